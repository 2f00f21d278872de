package mock

import "github.com/startuppulse/harvest"

var _ harvest.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of harvest.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(rawHTML string) (*harvest.ExtractResult, error)
}

func (e *ContentExtractor) Extract(rawHTML string) (*harvest.ExtractResult, error) {
	return e.ExtractFn(rawHTML)
}
