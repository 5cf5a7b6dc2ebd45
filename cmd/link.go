package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/service"
)

var (
	linkText string
	linkPage bool
)

var linkCmd = &cobra.Command{
	Use:   "link <url>",
	Short: "Save a shortcut for a link without analyzing it",
	Long: `Link saves a .url shortcut immediately, named after --text (the link text),
else the link URL itself. No page is fetched.

With --page the URL is treated as the current page and --text as its title.

Examples:
  smarturl link https://example.com/docs --text "Install guide"
  smarturl link https://example.com/ --page --text "Example home"`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringVar(&linkText, "text", "", "Link text or page title used for the filename")
	linkCmd.Flags().BoolVar(&linkPage, "page", false, "Treat the URL as the current page rather than a link")
}

func runLink(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	req := service.CreateFromLink{LinkURL: args[0], Text: linkText}
	if linkPage {
		req = service.CreateFromLink{Tab: core.Tab{URL: args[0], Title: linkText}}
	}

	res, err := a.svc.Handle(ctx, req)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ Could not create shortcut: %v\n", err)
		return err
	}
	d := res.(*service.Download)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved: %s (download %d)\n", d.Filename, d.ID)
	return nil
}
