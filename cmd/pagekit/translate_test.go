package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/porticus-lab/pagekit/export"
)

func writeSite(t *testing.T, dir string) {
	t.Helper()
	for name, f := range testSite {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pagekit %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestTranslateCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSite(t, dir)
	t.Setenv("PAGEKIT_SITE_DIR", dir)
	t.Setenv("PAGEKIT_LOG_LEVEL", "error")
	t.Setenv("PAGEKIT_PREFERENCE_FILE", filepath.Join(dir, "prefs.toml"))

	out := runCLI(t, "translate", "index.html", "--lang", "en")
	if !strings.Contains(out, "Welcome") || !strings.Contains(out, `lang="en"`) {
		t.Errorf("translate --lang en:\n%s", out)
	}

	// The stored preference applies when no language is given.
	outFile := filepath.Join(dir, "out.html")
	runCLI(t, "translate", "index.html", "--lang=", "-o", outFile)
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Welcome") {
		t.Errorf("stored preference not used:\n%s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	out := runCLI(t, "version")
	if !strings.HasPrefix(out, "pagekit dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestPageConfigFlags(t *testing.T) {
	flags := exportCmd.Flags()
	t.Cleanup(func() {
		flags.Set("size", "a4")
		flags.Set("landscape", "false")
		flags.Set("footer", "")
	})
	flags.Set("size", "A5")
	flags.Set("landscape", "true")
	flags.Set("footer", `<span class="pageNumber"></span>`)

	pg, err := pageConfig(exportCmd)
	if err != nil {
		t.Fatal(err)
	}
	if pg.Size.Width != 14.8 || pg.Orientation != export.Landscape || pg.Margin.Left != 1 {
		t.Errorf("unexpected page config %+v", pg)
	}
	if !pg.DisplayHeaderFooter || pg.FooterTemplate == "" || pg.HeaderTemplate != "" {
		t.Errorf("header/footer = %v %q %q", pg.DisplayHeaderFooter, pg.HeaderTemplate, pg.FooterTemplate)
	}

	flags.Set("size", "b4")
	if _, err := pageConfig(exportCmd); err == nil {
		t.Error("expected error for unknown size")
	}
}
