package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	sig "github.com/AnatoleLucet/signals"
	"github.com/AnatoleLucet/signals/examples/todo"
)

func stressCmd(opts *options) *cobra.Command {
	var (
		workers int
		ops     int
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run random edits on many lists concurrently",
		Long: `Run random edits on one list per worker goroutine. Each goroutine
owns its own reactive runtime, so the lists never share a graph.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd.Context(), cmd.OutOrStdout(), opts, workers, ops)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "Number of concurrent lists")
	cmd.Flags().IntVarP(&ops, "ops", "n", 1000, "Edits per list")

	return cmd
}

type renderCounter struct {
	renders atomic.Int64
}

// Write counts the summary lines, one per render.
func (c *renderCounter) Write(p []byte) (int, error) {
	if len(p) > 0 && p[len(p)-1] == '\n' && !isItemLine(p) {
		c.renders.Add(1)
	}
	return len(p), nil
}

func isItemLine(p []byte) bool {
	return len(p) > 0 && p[0] == '['
}

func runStress(ctx context.Context, out io.Writer, opts *options, workers, ops int) error {
	if workers <= 0 || ops <= 0 {
		return fmt.Errorf("workers and ops must be positive")
	}

	start := time.Now()
	counter := &renderCounter{}

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			defer sig.ReleaseRuntime()
			configureRuntime(opts)

			return stressList(ctx, counter, w, ops)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d lists, %d edits each, %d renders in %s\n",
		workers, ops, counter.renders.Load(), time.Since(start).Round(time.Millisecond))

	return nil
}

func stressList(ctx context.Context, w io.Writer, seed, ops int) error {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	l := todo.New()
	defer l.Close()

	l.Render(w)

	for i := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}

		items := l.Items()

		var cmd string
		switch op := rng.IntN(10); {
		case op < 4 || len(items) == 0:
			cmd = fmt.Sprintf("add task %d", i)
		case op < 7:
			cmd = fmt.Sprintf("toggle %d", items[rng.IntN(len(items))].ID)
		case op < 8:
			cmd = fmt.Sprintf("remove %d", items[rng.IntN(len(items))].ID)
		case op < 9:
			cmd = "filter " + todo.Filter(rng.IntN(3)).String()
		default:
			cmd = "clear"
		}

		if err := l.Exec(cmd); err != nil {
			return fmt.Errorf("list %d: %s: %w", seed, cmd, err)
		}
	}

	if want := countActive(l.Items()); l.Remaining.Read() != want {
		return fmt.Errorf("list %d: remaining is %d, want %d", seed, l.Remaining.Read(), want)
	}

	return nil
}

func countActive(items []*todo.Item) int {
	n := 0
	for _, it := range items {
		if !it.Done.Peek() {
			n++
		}
	}
	return n
}
