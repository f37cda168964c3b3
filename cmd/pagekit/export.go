package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/pagekit"
	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/i18n"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.html>",
	Short: "Render an element of an HTML page to PDF",
	Long: `Open an HTML page in headless Chrome and export one element to PDF.

The element must exist, be visible, have content and a non-zero size, and
every image inside it must load.

Example:
  pagekit export report.html -s '#report' -o report.pdf --size letter --landscape`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringP("selector", "s", "body", "CSS selector of the element to export")
	flags.StringP("output", "o", "", "output file (default: "+export.DefaultFilename+")")
	flags.StringP("lang", "l", "", "translate the page into this language first")
	flags.String("size", "a4", "paper size: a3, a4, a5, letter, legal, tabloid")
	flags.Bool("landscape", false, "use landscape orientation")
	flags.Float64("margin", 1.0, "uniform margin in centimeters")
	flags.Float64("scale", 1.0, "rendering scale, 0.1 to 2.0")
	flags.Bool("no-background", false, "omit background colors and images")
	flags.String("header", "", "HTML template for the print header")
	flags.String("footer", "", "HTML template for the print footer")
	flags.Bool("prefer-css-page-size", false, "let CSS @page size override --size")
}

var pageSizes = map[string]export.PageSize{
	"a3":      export.A3,
	"a4":      export.A4,
	"a5":      export.A5,
	"letter":  export.Letter,
	"legal":   export.Legal,
	"tabloid": export.Tabloid,
}

// pageConfig builds the paper layout from the export flags.
func pageConfig(cmd *cobra.Command) (export.PageConfig, error) {
	flags := cmd.Flags()
	sizeName, _ := flags.GetString("size")
	landscape, _ := flags.GetBool("landscape")
	margin, _ := flags.GetFloat64("margin")
	scale, _ := flags.GetFloat64("scale")
	noBackground, _ := flags.GetBool("no-background")
	header, _ := flags.GetString("header")
	footer, _ := flags.GetString("footer")
	preferCSS, _ := flags.GetBool("prefer-css-page-size")

	size, ok := pageSizes[strings.ToLower(sizeName)]
	if !ok {
		return export.PageConfig{}, fmt.Errorf("unknown paper size %q", sizeName)
	}
	pg := export.PageConfig{
		Size:           size,
		Margin:         export.UniformMargin(margin),
		Scale:          scale,
		OmitBackground: noBackground,

		DisplayHeaderFooter: header != "" || footer != "",
		HeaderTemplate:      header,
		FooterTemplate:      footer,
		PreferCSSPageSize:   preferCSS,
	}
	if landscape {
		pg.Orientation = export.Landscape
	}
	return pg, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	selector, _ := cmd.Flags().GetString("selector")
	output, _ := cmd.Flags().GetString("output")
	lang, _ := cmd.Flags().GetString("lang")
	pg, err := pageConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := newBrowser(cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	tab, err := b.OpenFile(ctx, args[0])
	if err != nil {
		return err
	}
	defer tab.Close()

	loader := i18n.FSLoader{FS: os.DirFS(cfg.SiteDir)}
	opts := append(shellOptions(cfg, logger, tab, tab.Storage()), pagekit.WithExporter(tab, tab))
	sh := pagekit.New(loader, opts...)
	defer sh.Close()

	if lang != "" {
		if err := sh.Start(ctx, cfg.DefaultLang); err != nil {
			return err
		}
		if err := sh.Languages.SetLanguage(ctx, lang); err != nil {
			return err
		}
	}

	if err := sh.Exports.SavePDF(ctx, selector, output, &export.Options{Page: pg}); err != nil {
		return err
	}
	logger.Info("pdf exported",
		"file", args[0],
		"selector", selector,
	)
	return nil
}
