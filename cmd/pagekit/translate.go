package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/pagekit"
	"github.com/porticus-lab/pagekit/dom"
	"github.com/porticus-lab/pagekit/i18n"
)

var translateCmd = &cobra.Command{
	Use:   "translate <file.html>",
	Short: "Rewrite an HTML page into a language",
	Long: `Translate an HTML page with the dictionaries in <site_dir>/lang.

Without --lang the stored preference is used, then the default language.
A language given with --lang becomes the stored preference when
preference_file is configured.

Example:
  pagekit translate web/index.html --lang en -o index.en.html`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringP("lang", "l", "", "language code to translate into")
	translateCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	lang, _ := cmd.Flags().GetString("lang")
	output, _ := cmd.Flags().GetString("output")

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	doc, err := dom.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	loader := i18n.FSLoader{FS: os.DirFS(cfg.SiteDir)}
	sh := pagekit.New(loader, shellOptions(cfg, logger, doc, preferenceStore(cfg))...)
	defer sh.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := sh.Start(ctx, cfg.DefaultLang); err != nil {
		return err
	}
	if lang != "" {
		if err := sh.Languages.SetLanguage(ctx, lang); err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		out, err := os.Create(output)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}
	if err := doc.Render(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	logger.Info("page translated",
		"file", args[0],
		"lang", sh.Languages.Current(),
	)
	return nil
}
