package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/bububa/waypoint/components/document"
)

var ErrRemoteDirectory = errors.New("directory listings must be local files")

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	var (
		entries []document.Record
		links   []string
	)
	for _, input := range c.Inputs {
		if isURL(input) {
			links = append(links, input)
			continue
		}
		records, err := c.scrapeFile(deps.Scraper, input)
		if err != nil {
			return err
		}
		entries = append(entries, records...)
	}
	if len(links) > 0 {
		if c.Directory {
			return ErrRemoteDirectory
		}
		records, err := deps.Scraper.FetchAll(deps.Ctx, links)
		if err != nil {
			return err
		}
		if _, failed := deps.Scraper.Stats(); failed > 0 {
			fmt.Fprintf(deps.Stderr, "warning: %d of %d pages could not be fetched\n", failed, len(links))
		}
		entries = append(entries, records...)
	}

	output := entries
	if c.Append {
		existing, err := document.ReadFile(c.Output)
		if err != nil && !errors.Is(err, os.ErrNotExist) && !errors.Is(err, document.ErrNoContent) {
			return err
		}
		output = append(existing, entries...)
	}
	if err := document.WriteFile(c.Output, output); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d entries\n", len(entries))
	fmt.Fprintf(deps.Stdout, "Total number of entries: %d\n", len(output))
	return nil
}

func (c *ScrapeCmd) scrapeFile(scraper *document.Scraper, fname string) ([]document.Record, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if c.Directory {
		return scraper.Directory(f)
	}
	record, err := scraper.Page(fname, f)
	if err != nil {
		return nil, err
	}
	return []document.Record{record}, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
