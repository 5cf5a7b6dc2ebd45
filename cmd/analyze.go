package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/service"
)

var (
	analyzeTitle  string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a page and propose a shortcut filename",
	Long: `Analyze fetches a page, builds its content model, ranks its keywords and
prints the filename a shortcut would get. When the page cannot be scanned the
title given with --title is used instead.

Examples:
  smarturl analyze https://example.com/blog/post
  smarturl analyze https://example.com --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Page title to fall back on when the scan fails")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "text", "Output format: text, json or yaml")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.svc.Handle(ctx, service.AnalyzePage{Tab: core.Tab{URL: args[0], Title: analyzeTitle}})
	if err != nil {
		return err
	}
	return printAnalysis(cmd.OutOrStdout(), res.(*service.Analysis), analyzeOutput)
}

func printAnalysis(w io.Writer, a *service.Analysis, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(a)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "", "text":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	page := a.Page
	fmt.Fprintf(w, "Title:    %s\n", page.Title)
	fmt.Fprintf(w, "URL:      %s\n", page.URL)
	if a.Fallback {
		fmt.Fprintln(w, "Scan:     unavailable, using tab data")
	}
	fmt.Fprintf(w, "Keywords: %s\n", strings.Join(page.Keywords, ", "))
	if len(page.Headings) > 0 {
		fmt.Fprintf(w, "Headings: %d\n", len(page.Headings))
	}
	fmt.Fprintf(w, "Filename: %s.url\n", a.Filename)
	if a.Download != nil {
		fmt.Fprintf(w, "✓ Saved: %s (download %d)\n", a.Download.Filename, a.Download.ID)
	}
	return nil
}
