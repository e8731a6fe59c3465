package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/visionary/pkg/service"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report database connectivity and the symbol count",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			st, err := a.svc.Status(contextOrBackground(cmd))
			if st.Database == service.StatusConnected {
				okColor.Fprintf(out, "database: %s\n", st.Database)
			} else {
				warning.Fprintf(out, "database: %s\n", st.Database)
			}
			fmt.Fprintf(out, "symbols:  %d\n", st.Symbols)
			return err
		},
	}
}
