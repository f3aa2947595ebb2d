package document

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetch downloads a page and converts it with Page.
func (s *Scraper) Fetch(ctx context.Context, link string) (Record, error) {
	record, err := s.fetch(ctx, link)
	if err != nil {
		s.failed.Inc()
		return nil, err
	}
	s.fetched.Inc()
	return record, nil
}

func (s *Scraper) fetch(ctx context.Context, link string) (Record, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", link, httpResp.Status)
	}
	return s.Page(link, io.LimitReader(httpResp.Body, s.maxContentLength))
}

// FetchAll fetches links concurrently. Pages that fail are logged and left
// out; the records of the others keep the order of links. Only a canceled
// context is reported as an error.
func (s *Scraper) FetchAll(ctx context.Context, links []string) ([]Record, error) {
	results := make([]Record, len(links))
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for idx, link := range links {
		g.Go(func() error {
			record, err := s.Fetch(ctx, link)
			if err != nil {
				s.logger.Warn("fetch failed", zap.String("url", link), zap.Error(err))
				return nil
			}
			results[idx] = record
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ret := make([]Record, 0, len(results))
	for _, record := range results {
		if record != nil {
			ret = append(ret, record)
		}
	}
	s.logger.Info("fetched pages",
		zap.Int64("fetched", s.fetched.Load()),
		zap.Int64("failed", s.failed.Load()))
	return ret, nil
}

// Stats returns how many pages were fetched and how many failed so far.
func (s *Scraper) Stats() (fetched int64, failed int64) {
	return s.fetched.Load(), s.failed.Load()
}
