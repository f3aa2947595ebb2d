package main

import (
	"fmt"

	"github.com/bububa/waypoint/components/document"
	"github.com/bububa/waypoint/components/splitter"
)

// Run executes the chunk command.
func (c *ChunkCmd) Run(deps *Dependencies) error {
	maxTokens := deps.Config.Chunk.MaxTokens
	if c.MaxTokens != 0 {
		maxTokens = c.MaxTokens
	}
	overlap := deps.Config.Chunk.Overlap
	if c.Overlap != -1 {
		overlap = c.Overlap
	}
	chunker, err := splitter.NewTokens(
		splitter.WithChunkSize(maxTokens),
		splitter.WithOverlap(overlap),
		splitter.WithTokenizer(deps.Tokenizer),
	)
	if err != nil {
		return err
	}

	records, err := document.ReadFile(c.Input)
	if err != nil {
		return err
	}
	chunked, summary, err := document.ChunkRecords(chunker, records,
		document.WithDropEmpty(c.DropEmpty || deps.Config.Chunk.DropEmpty),
		document.WithChunkLogger(deps.Logger))
	if err != nil {
		return err
	}
	if err := document.WriteFile(c.Output, chunked); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, "--- Chunking Summary ---")
	fmt.Fprintf(deps.Stdout, "Records chunked: %d\n", summary.Records)
	fmt.Fprintf(deps.Stdout, "Total text length processed: %d characters\n", summary.Characters)
	fmt.Fprintf(deps.Stdout, "Total tokens processed: %d\n", summary.Tokens)
	fmt.Fprintf(deps.Stdout, "Total number of chunks created: %d\n", summary.Chunks)
	fmt.Fprintf(deps.Stdout, "Chunked JSON has been saved to %s\n", c.Output)
	return nil
}
