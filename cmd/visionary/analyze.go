package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/visionary/pkg/vision"
)

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var (
		file          string
		visionContext string
		asJSON        bool
	)

	command := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Interpret a vision without storing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, err := readDescription(cmd, args, file)
			if err != nil {
				return err
			}
			a, err := newEngine(opts)
			if err != nil {
				return err
			}

			res := a.engine.AnalyzeVision(description, visionContext)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			if res.Degraded {
				warning.Fprintln(out, "The analysis failed; showing general guidance.")
			}
			printInterpretation(out, vision.FormatRecord(res))
			return nil
		},
	}
	command.Flags().StringVarP(&file, "file", "f", "", "read the description from a file (- for stdin)")
	command.Flags().StringVar(&visionContext, "context", "", "circumstances surrounding the vision")
	command.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	return command
}

// readDescription takes the description from the argument, or from the
// file flag.
func readDescription(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", errors.New("pass the description as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(b), nil
	}
	return "", errors.New("a description is required")
}

func nonBlank(s string) bool { return strings.TrimSpace(s) != "" }
