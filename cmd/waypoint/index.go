package main

import (
	"fmt"

	"github.com/bububa/waypoint/components/document"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	records, err := document.ReadFile(c.Input)
	if err != nil {
		return err
	}
	if c.Rebuild {
		if err := deps.Store.Reset(); err != nil {
			return err
		}
	}
	n, err := deps.Store.Index(deps.Ctx, records)
	if err != nil {
		return err
	}
	total, err := deps.Store.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d records into %q (%d total)\n", n, len(records), deps.Store.Collection, total)
	return nil
}
