package main

import (
	"fmt"

	"github.com/bububa/waypoint/components/document"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	records, err := document.ReadFile(c.Input)
	if err != nil {
		return err
	}
	cleaned, err := deps.Cleaner.CleanAll(records)
	if err != nil {
		return err
	}
	if err := document.WriteFile(c.Output, cleaned); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Cleaned %d of %d records\n", len(cleaned), len(records))
	fmt.Fprintf(deps.Stdout, "Cleaned JSON has been saved to %s\n", c.Output)
	return nil
}
