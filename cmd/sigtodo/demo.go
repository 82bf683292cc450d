package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/signals/examples/todo"
)

func demoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a scripted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

var demoSteps = []string{
	"add write the parser; add write the tests; add ship it",
	"toggle 1",
	"filter active",
	"rename 3 ship it on friday",
	"toggle 2; filter completed",
	"clear",
	"filter all",
}

func runDemo(out io.Writer) error {
	l := todo.New()
	defer l.Close()

	fmt.Fprintln(out, "$ (empty list)")
	l.Render(out)

	for _, step := range demoSteps {
		fmt.Fprintf(out, "\n$ %s\n", step)

		if err := l.Exec(step); err != nil {
			return err
		}
	}

	return nil
}
