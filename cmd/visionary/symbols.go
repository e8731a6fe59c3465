package main

import (
	"github.com/spf13/cobra"

	"github.com/japaniel/visionary/pkg/symbols"
)

func newSymbolsCommand(opts *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "symbols",
		Short: "Inspect or reload the symbol table",
	}
	command.AddCommand(newSymbolsListCommand(opts), newSymbolsResetCommand(opts))
	return command
}

func newSymbolsListCommand(opts *rootOptions) *cobra.Command {
	var grouped bool

	command := &cobra.Command{
		Use:   "list",
		Short: "List stored symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.svc.Symbols(contextOrBackground(cmd))
			if err != nil {
				return err
			}
			printSymbols(cmd.OutOrStdout(), entries, grouped)
			return nil
		},
	}
	command.Flags().BoolVar(&grouped, "grouped", false, "group symbols by category")
	return command
}

func newSymbolsResetCommand(opts *rootOptions) *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored symbols with the built-in table or a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []symbols.Entry
			if file != "" {
				var err error
				if entries, err = symbols.LoadFile(file); err != nil {
					return err
				}
			}
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.svc.ResetSymbols(contextOrBackground(cmd), entries)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Loaded %d symbols.\n", n)
			return nil
		},
	}
	command.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON symbol table")
	return command
}
