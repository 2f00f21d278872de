package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/startuppulse/harvest"
)

// maxPromptTokens bounds the cleaning prompt. Exports larger than this
// are trimmed from the tail, which holds the oldest articles.
const maxPromptTokens = 200000

var h1Re = regexp.MustCompile(`(?i)<h1[^>]*>(.*?)</h1>`)

// Ensure Reporter implements harvest.Reporter.
var _ harvest.Reporter = (*Reporter)(nil)

// Reporter turns the latest article export into a stored HTML report
// using two generation passes: the first distills the raw articles into
// categorized insights, the second composes the report document.
type Reporter struct {
	cleaner  harvest.Summarizer
	composer harvest.Summarizer
	exports  harvest.ExportService
	reports  harvest.ReportService
	counter  harvest.TokenCounter
	logger   *slog.Logger

	// Now is overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewReporter creates a Reporter. The counter may be nil, in which case
// no prompt size trimming happens.
func NewReporter(cleaner, composer harvest.Summarizer, exports harvest.ExportService, reports harvest.ReportService, counter harvest.TokenCounter, logger *slog.Logger) *Reporter {
	return &Reporter{
		cleaner:  cleaner,
		composer: composer,
		exports:  exports,
		reports:  reports,
		counter:  counter,
		logger:   logger,
		Now:      time.Now,
	}
}

// GenerateReport builds a report from the latest export and stores it.
func (r *Reporter) GenerateReport(ctx context.Context) (*harvest.Report, error) {
	export, err := r.exports.FindLatestExport(ctx)
	if err != nil {
		return nil, err
	}
	if len(export.Articles) == 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "latest export contains no articles")
	}

	articles, err := r.fitToBudget(ctx, export.Articles)
	if err != nil {
		return nil, err
	}

	cleaningPrompt, err := BuildCleaningPrompt(articles)
	if err != nil {
		return nil, err
	}
	cleaned, err := r.cleaner.Generate(ctx, cleaningPrompt)
	if err != nil {
		return nil, fmt.Errorf("cleaning pass: %w", err)
	}

	html, err := r.composer.Generate(ctx, BuildReportPrompt(cleaned))
	if err != nil {
		return nil, fmt.Errorf("composition pass: %w", err)
	}
	html = stripCodeFences(html)

	report := &harvest.Report{
		Name: r.reportName(html),
		HTML: html,
	}
	if err := r.reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	r.logger.Info("report generated", "name", report.Name, "articles", len(articles))
	return report, nil
}

// fitToBudget halves the article list until the cleaning prompt fits
// under maxPromptTokens. Articles are ordered newest first, so trimming
// drops the oldest ones.
func (r *Reporter) fitToBudget(ctx context.Context, articles []harvest.ExportedArticle) ([]harvest.ExportedArticle, error) {
	if r.counter == nil {
		return articles, nil
	}

	for len(articles) > 1 {
		prompt, err := BuildCleaningPrompt(articles)
		if err != nil {
			return nil, err
		}
		tokens, err := r.counter.CountTokens(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if tokens <= maxPromptTokens {
			return articles, nil
		}

		r.logger.Warn("export exceeds prompt budget, trimming",
			"tokens", tokens,
			"articles", len(articles),
		)
		articles = articles[:len(articles)/2]
	}
	return articles, nil
}

// reportName extracts the report title from the first h1 element,
// falling back to a dated default.
func (r *Reporter) reportName(html string) string {
	if m := h1Re.FindStringSubmatch(html); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}
	return "Market Insights Report - " + r.Now().Format("January 2, 2006")
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// around HTML output despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```html")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// BuildCleaningPrompt builds the first-pass prompt that distills raw
// articles into categorized insights.
func BuildCleaningPrompt(articles []harvest.ExportedArticle) (string, error) {
	payload, err := json.Marshal(articles)
	if err != nil {
		return "", fmt.Errorf("failed to encode articles: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`I have a dataset of articles containing titles, content, and sources. The articles cover various topics, but I want to extract only **the most important insights** relevant to the following categories:

1. **Startup News** - New startups, funding rounds, acquisitions, IPOs, and significant product launches.
2. **Emerging Trends** - Growing industries, breakthrough technologies, and evolving business models.
3. **Investment Opportunities** - Undervalued sectors, upcoming IPOs, and industries gaining investor attention.
4. **Market Gaps & Problems to Solve** - Pain points in industries that present opportunities for new businesses or products.
5. **Potential Mistakes & Risks to Avoid** - Failures, regulatory challenges, or strategic errors that entrepreneurs should be aware of.

### Instructions:
- Identify key takeaways from each article that match the categories above.
- Summarize findings in a clear, concise, and structured format.
- Remove irrelevant information (e.g., general news, unrelated politics, non-actionable insights).
- Maintain the original source for credibility.
- Additionally, for each article, identify up to 3 trend tags from the following list: ["AI agents", "Web3", "quantum computing", "sustainable tech", "remote work tools", "fintech", "healthtech"] and include them in the output JSON.

### Output Format Example:
[
  {
    "title": "Example Title",
    "content": "Summary of insight",
    "source": "Source URL",
    "tags": ["AI agents", "fintech"]
  }
]

Here is the dataset in json format:
`)
	sb.Write(payload)
	return sb.String(), nil
}

// BuildReportPrompt builds the second-pass prompt that composes the
// final HTML report from the cleaned insights.
func BuildReportPrompt(cleanedData string) string {
	var sb strings.Builder
	sb.WriteString(`Context:
You are analyzing a curated and cleaned dataset containing key insights extracted from articles across domains like startups, funding, acquisitions, tech innovation, business models, emerging trends, market gaps, and investment news.

Objective:
Generate a structured and strategically actionable HTML report with deep insight density. The report should be written for founders, operators, and VCs who want to make moves in the next 30-90 days.

Instructions:
1. Analyze the data to uncover underlying trends, strategic risks, emerging sectors, and capital-efficient business opportunities.
2. Each bullet point should be a mini-analysis, limited to 3-4 sentences for conciseness.
3. Frame each insight with: what is happening, why it is important or new, what the business or product opportunity is, and who can act on it.
4. Highlight both current trends and white space opportunities.
5. Keep the report scannable, professional, and under 5 minutes to read.

Structure the HTML report into these sections:

SECTOR SCAN - "Key Market Dynamics and Strategic Patterns"
- Focus on macro themes across industries. Limit to 3 insights.

SIGNAL DETECTION - "Emerging but Underexploited Trends"
- Highlight nascent trends gaining early traction but not yet saturated. Limit to 2 insights.

TACTICAL BRIEF - "Actionable Moves for Builders and Investors"
- Provide specific strategies tailored for founders, investors, and operators. Limit to 3 insights, one per role.

OPPORTUNITY MATRIX - "Gaps, White Spaces, and Monetizable Problems"
- Identify 2 market gaps or broken systems. For each, explain what is missing, what type of startup could fix it, what business model could work, and why now.

Final Output Format:
- Output a complete HTML document with an <h1> report title, one <section> per report section with an <h2> heading and a bullet list.
- Highlight key terms with <strong>.
- Only output raw HTML; no markdown, no commentary, no backticks, no code fences.
- Do NOT include unnecessary data or filler text.

Data:
`)
	sb.WriteString(cleanedData)
	return sb.String()
}
