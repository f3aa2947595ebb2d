package main

import (
	"bufio"
	"fmt"
	"strings"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := strings.Join(c.Question, " ")
	if question == "" && deps.Stdin != nil {
		scanner := bufio.NewScanner(deps.Stdin)
		if scanner.Scan() {
			question = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	answer, err := deps.Asker.Ask(deps.Ctx, question)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
