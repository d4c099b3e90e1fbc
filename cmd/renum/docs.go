package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:    "gen-docs",
	Short:  "Generate man or markdown pages for renum",
	Hidden: true,
	RunE:   runGenDocs,
}

func init() {
	docsCmd.Flags().String("dir", "docs", "where to write the generated pages")
	docsCmd.Flags().String("format", "man", "page format: man or markdown")
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")       //nolint:errcheck // flag name is hardcoded
	format, _ := cmd.Flags().GetString("format") //nolint:errcheck // flag name is hardcoded

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create docs dir %s: %w", dir, err)
	}

	// Generate from the root so the pages cover renum itself, not just
	// this subcommand.
	root := cmd.Root()

	switch format {
	case "man":
		header := &doc.GenManHeader{
			Title:   "RENUM",
			Section: "1",
			Source:  "renum " + version,
		}
		return doc.GenManTree(root, header, dir)
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	default:
		return fmt.Errorf("unknown format %q (use man or markdown)", format)
	}
}
