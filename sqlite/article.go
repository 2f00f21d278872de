package sqlite

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/startuppulse/harvest"
)

// saveBatchSize is how many articles go into one INSERT transaction.
// A failing batch is skipped without aborting the ones after it.
const saveBatchSize = 50

// Compile-time interface verification.
var _ harvest.ArticleService = (*ArticleService)(nil)

// ArticleService implements harvest.ArticleService using SQLite.
type ArticleService struct {
	db     *DB
	logger *slog.Logger

	// writeBatch persists one batch; replaceable in tests to inject
	// batch-level failures.
	writeBatch func(ctx context.Context, batch []*harvest.Article) (int, error)
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB, logger *slog.Logger) *ArticleService {
	s := &ArticleService{db: db, logger: logger}
	s.writeBatch = s.saveBatch
	return s
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// SaveArticles persists articles with insert-if-absent semantics keyed on
// URL. In-batch URL duplicates collapse to the last occurrence before
// writing; articles whose URL is already stored are skipped, never
// updated. Invalid articles are dropped. The returned count is the number
// of rows actually written.
func (s *ArticleService) SaveArticles(ctx context.Context, articles []*harvest.Article) (int, error) {
	deduped := harvest.DeduplicateByURL(articles)

	valid := make([]*harvest.Article, 0, len(deduped))
	for _, a := range deduped {
		if err := a.Validate(); err != nil {
			continue
		}
		valid = append(valid, a)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	saved := 0
	var firstErr error
	succeeded := false

	for start := 0; start < len(valid); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(valid) {
			end = len(valid)
		}

		n, err := s.writeBatch(ctx, valid[start:end])
		if err != nil {
			s.logger.Error("article batch failed",
				"start", start,
				"size", end-start,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved += n
		succeeded = true
	}

	// A partial failure still reports what was written. Only a run where
	// nothing could be stored surfaces the error.
	if !succeeded {
		return 0, firstErr
	}
	return saved, nil
}

// saveBatch writes one batch in a transaction and returns the number of
// rows inserted.
func (s *ArticleService) saveBatch(ctx context.Context, batch []*harvest.Article) (int, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	inserted := 0

	for _, a := range batch {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.ScrapedAt.IsZero() {
			a.ScrapedAt = now
		}
		a.ContentHash = hashContent(a.Content)

		categories, err := json.Marshal(a.Categories)
		if err != nil {
			return 0, fmt.Errorf("failed to encode categories: %w", err)
		}
		metadata, err := json.Marshal(a.Metadata)
		if err != nil {
			return 0, fmt.Errorf("failed to encode metadata: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO startup_articles
				(id, title, content, url, image_url, published_date, source, author, categories, metadata, content_hash, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, a.Title, a.Content, a.URL, a.ImageURL, a.PublishedDate.UTC().Format(time.RFC3339),
			a.Source, a.Author, string(categories), string(metadata), a.ContentHash,
			a.ScrapedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return 0, err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindArticles retrieves articles matching the filter, newest first by
// published date.
func (s *ArticleService) FindArticles(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, title, content, url, image_url, published_date, source, author, categories, metadata, content_hash, scraped_at
		FROM startup_articles WHERE 1=1`)

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY published_date DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*harvest.Article
	for rows.Next() {
		var a harvest.Article
		var publishedDate, scrapedAt, categories, metadata string

		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.URL, &a.ImageURL, &publishedDate,
			&a.Source, &a.Author, &categories, &metadata, &a.ContentHash, &scrapedAt); err != nil {
			return nil, err
		}

		if a.PublishedDate, err = parseRFC3339(publishedDate, "published_date"); err != nil {
			return nil, err
		}
		if a.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(categories), &a.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &a.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}

		articles = append(articles, &a)
	}

	return articles, rows.Err()
}

// DeleteAllArticles removes every stored article.
func (s *ArticleService) DeleteAllArticles(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM startup_articles")
	return err
}
