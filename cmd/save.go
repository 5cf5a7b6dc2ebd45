package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/render"
	"github.com/gaurav-prasanna/smarturl/core/service"
	"github.com/gaurav-prasanna/smarturl/crawl"
)

var (
	saveName   string
	saveTitle  string
	saveFormat string
	saveAll    bool
	saveLimit  int
)

var saveCmd = &cobra.Command{
	Use:   "save <url>",
	Short: "Save a shortcut for a page",
	Long: `Save analyzes a page and saves a shortcut named after its keywords into the
download folder. --name overrides the proposed filename. --format selects the
artifact: the .url shortcut (default) or a json, yaml, markdown or pdf report.

With --all, every page discovered on the same site (sitemap.xml first, then
links) gets its own shortcut, one after another.

Examples:
  smarturl save https://example.com/blog/post
  smarturl save https://example.com/blog/post --name reading_list --format markdown
  smarturl save https://docs.example.com --all --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().StringVar(&saveName, "name", "", "Filename without extension (default: derived from keywords)")
	saveCmd.Flags().StringVar(&saveTitle, "title", "", "Page title to fall back on when the scan fails")
	saveCmd.Flags().StringVar(&saveFormat, "format", "url", fmt.Sprintf("Artifact format %v", render.Formats))
	saveCmd.Flags().BoolVar(&saveAll, "all", false, "Save shortcuts for all discovered pages of the site")
	saveCmd.Flags().IntVar(&saveLimit, "limit", crawl.DefaultLimit, "Maximum pages to save with --all")
}

func runSave(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	if saveAll && saveName != "" {
		return fmt.Errorf("--name cannot be combined with --all")
	}
	if _, err := render.ForFormat(saveFormat); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if saveAll {
		return saveSite(ctx, out, a, rawURL)
	}

	d, err := savePage(ctx, a.svc, core.Tab{URL: rawURL, Title: saveTitle}, saveName)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Saved: %s (download %d)\n", d.Filename, d.ID)
	return nil
}

// savePage analyzes tab unless a name is given for a plain shortcut, then
// generates the artifact.
func savePage(ctx context.Context, svc *service.Service, tab core.Tab, name string) (*service.Download, error) {
	req := service.GenerateShortcut{
		Shortcut: core.ShortcutRequest{Filename: name, URL: tab.URL, Title: tab.Title},
		Format:   saveFormat,
	}

	needsPage := saveFormat != "" && saveFormat != "url"
	if name == "" || needsPage {
		analysis, err := svc.Inspect(ctx, tab)
		if err != nil {
			return nil, err
		}
		if name == "" {
			req.Shortcut.Filename = analysis.Filename
		}
		if req.Shortcut.Title == "" {
			req.Shortcut.Title = analysis.Page.Title
		}
		req.Page = analysis.Page
	}

	res, err := svc.Handle(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.(*service.Download), nil
}

// saveSite processes discovered pages sequentially. A failed page is
// reported and skipped.
func saveSite(ctx context.Context, out io.Writer, a *app, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	fmt.Fprintf(out, "Discovering pages from %s...\n", rawURL)
	urls, err := crawl.Discover(ctx, rawURL, a.fetcher, saveLimit)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(out, "Found %d pages to save\n", len(urls))

	var failed int
	for i, pageURL := range urls {
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(urls), pageURL)
		d, err := savePage(ctx, a.svc, core.Tab{URL: pageURL}, "")
		if err != nil {
			fmt.Fprintf(out, "  ✗ Error: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "  ✓ Saved: %s\n", d.Filename)
	}

	if failed > 0 {
		fmt.Fprintf(out, "\n%d/%d pages failed\n", failed, len(urls))
	}
	return nil
}
