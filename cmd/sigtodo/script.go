package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/signals/examples/todo"
)

func scriptCmd(opts *options) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "script [file]",
		Short: "Run todo commands from a file or stdin",
		Long: `Run todo commands, one batch per line, and render the list after
each line that changed what is displayed.

Commands:
  add <title>
  toggle <id>
  rename <id> <title>
  remove <id>
  filter all|active|completed
  clear

Several commands on one line, separated by ";", render once.

Examples:
  echo "add milk; add eggs; toggle 1" | sigtodo script
  sigtodo script todos.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if quiet {
				out = io.Discard
			}

			return runScript(in, out)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not render the list")

	return cmd
}

func runScript(in io.Reader, out io.Writer) error {
	l := todo.New()
	defer l.Close()

	l.Render(out)

	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		if err := l.Exec(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}

	return scanner.Err()
}
