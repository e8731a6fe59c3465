package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/japaniel/visionary/pkg/symbols"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	okColor = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
)

// printInterpretation writes rendered commentary, colouring section headers.
func printInterpretation(w io.Writer, text string) {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "•") {
			heading.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}

func printSymbols(w io.Writer, entries []symbols.Entry, grouped bool) {
	if !grouped {
		for _, e := range entries {
			fmt.Fprintf(w, "%-16s %-10s %s\n", e.Symbol, e.Category, e.Meaning)
		}
		return
	}
	groups := symbols.GroupByCategory(entries)
	for i, category := range symbols.Categories(entries) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading.Fprintf(w, "%s (%d)\n", category, len(groups[category]))
		for _, e := range groups[category] {
			fmt.Fprintf(w, "  %-16s %s\n", e.Symbol, e.Meaning)
			if len(e.References) > 0 {
				fmt.Fprintf(w, "  %-16s %s\n", "", strings.Join(e.References, "; "))
			}
		}
	}
}
