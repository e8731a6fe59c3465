package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/visionary/pkg/service"
)

func newSubmitCommand(opts *rootOptions) *cobra.Command {
	var req service.SubmitRequest
	var pageURL string

	command := &cobra.Command{
		Use:   "submit",
		Short: "Interpret a vision and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageURL != "" && nonBlank(req.Description) {
				return errors.New("use either --description or --url")
			}
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := contextOrBackground(cmd)
			out := cmd.OutOrStdout()
			if pageURL != "" {
				n, err := a.fetcher().Fetch(ctx, pageURL)
				if err != nil {
					return err
				}
				req.Description = n.Text
				if req.Title == "" {
					req.Title = truncateRunes(n.Title, 100)
				}
				fmt.Fprintf(out, "Fetched %q (%d chars)\n", n.Title, len(n.Text))
			}

			sub, err := a.svc.Submit(ctx, req)
			if errors.Is(err, service.ErrPersistence) {
				warning.Fprintln(out, "The interpretation could not be saved:")
				printInterpretation(out, sub.Interpretation)
				return err
			}
			if err != nil {
				return err
			}

			okColor.Fprintf(out, "Stored vision %s\n\n", sub.ID)
			printInterpretation(out, sub.Interpretation)
			return nil
		},
	}
	command.Flags().StringVar(&req.Title, "title", "", "short title")
	command.Flags().StringVarP(&req.Description, "description", "d", "", "what was seen")
	command.Flags().StringVar(&req.Context, "context", "", "circumstances surrounding the vision")
	command.Flags().StringVar(&pageURL, "url", "", "fetch the description from a web page")
	return command
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
