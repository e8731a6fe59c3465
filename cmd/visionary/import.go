package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/visionary/pkg/ingest"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var workers int

	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Interpret and store a YAML or JSON list of visions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := ingest.LoadBatch(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			ig := ingest.NewIngester(a.store.DB().DB, a.svc)
			ig.Workers = a.cfg.Ingest.Workers
			if workers > 0 {
				ig.Workers = workers
			}
			ig.BatchSize = a.cfg.Ingest.BatchSize
			ig.FlushInterval = a.cfg.Ingest.FlushInterval()
			ig.Logger = a.logger.Named("ingest")
			ig.OnProgress = func(current, total int) {
				fmt.Fprintf(out, "\rprocessed %d/%d", current, total)
			}

			count, err := ig.Ingest(contextOrBackground(cmd), reqs)
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("import stopped after %d visions: %w", count, err)
			}
			okColor.Fprintf(out, "Stored %d of %d visions.\n", count, len(reqs))
			return nil
		},
	}
	command.Flags().IntVar(&workers, "workers", 0, "analysis workers (overrides ingest.workers)")
	return command
}
