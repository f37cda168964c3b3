package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/pagekit"
	"github.com/porticus-lab/pagekit/browser"
	"github.com/porticus-lab/pagekit/config"
	"github.com/porticus-lab/pagekit/dom"
	"github.com/porticus-lab/pagekit/export"
	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

const (
	shutdownTimeout = 10 * time.Second
	maxExportBody   = 10 << 20
	preferenceAge   = 365 * 24 * time.Hour
)

// kindExport labels failed PDF exports in the server log.
const kindExport fault.Kind = "export"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve localised pages",
	Long: `Serve the HTML pages and dictionaries under site_dir.

Each page is translated on the server. The language is taken from the
?lang= query parameter, then the preferredLanguage cookie, then the
Accept-Language header, then default_lang. The chosen language is stored
back in the cookie.

POST /export renders an element of a posted HTML document to PDF when a
browser is available.

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  pagekit serve -c pagekit.yaml
  PAGEKIT_ADDR=:9000 pagekit serve --no-export`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("no-export", false, "do not start a browser; POST /export answers 503")
}

// server handles page, dictionary and export requests.
type server struct {
	cfg     *config.Config
	logger  *slog.Logger
	site    fs.FS
	loader  i18n.Loader
	faults  *fault.Service
	browser *browser.Browser
}

// newServer creates a server for site. A nil browser disables export.
func newServer(cfg *config.Config, logger *slog.Logger, site fs.FS, b *browser.Browser) *server {
	return &server{
		cfg:     cfg,
		logger:  logger,
		site:    site,
		loader:  newCachingLoader(i18n.FSLoader{FS: site}),
		faults:  fault.New(fault.WithLogger(logger)),
		browser: b,
	}
}

// preload loads every supported dictionary so a broken site fails at
// start-up.
func (s *server) preload(ctx context.Context) error {
	for _, code := range s.cfg.Supported {
		if _, err := s.loader.Load(ctx, code); err != nil {
			return err
		}
	}
	return nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /lang/", http.FileServerFS(s.site))
	mux.HandleFunc("POST /export", s.handleExport)
	mux.HandleFunc("GET /", s.handlePage)
	return s.faults.Middleware(mux)
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, "index.html")
	}
	if path.Ext(name) != ".html" {
		http.ServeFileFS(w, r, s.site, name)
		return
	}

	data, err := fs.ReadFile(s.site, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	doc, err := dom.ParseString(string(data))
	if err != nil {
		s.faults.Handle(ctx, fault.KindUncaught, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	prefs := map[string]string{}
	if c, err := r.Cookie(i18n.PreferenceKey); err == nil {
		prefs[i18n.PreferenceKey] = c.Value
	}
	store := i18n.NewMemoryStore(prefs)

	opts := append(shellOptions(s.cfg, s.logger, doc, store),
		pagekit.WithLanguageOptions(i18n.WithAcceptLanguage(r.Header.Get("Accept-Language"))),
	)
	sh := pagekit.New(s.loader, opts...)
	defer sh.Close()

	// A failed start is already shown on the page; serve it untranslated.
	if err := sh.Start(ctx, s.cfg.DefaultLang); err == nil {
		if lang := r.URL.Query().Get("lang"); lang != "" {
			if err := sh.Languages.SetLanguage(ctx, lang); err != nil {
				sh.Faults.Handle(ctx, fault.KindValidation, err)
			}
		}
	}

	lang := sh.Languages.Current()
	if lang != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.PreferenceKey,
			Value:    lang,
			Path:     "/",
			MaxAge:   int(preferenceAge.Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set("Content-Language", lang)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Render(w); err != nil {
		s.logger.WarnContext(ctx, "writing page", slog.String("page", name), slog.Any("error", err))
	}
}

// exportRequest is the JSON body of POST /export.
type exportRequest struct {
	HTML      string  `json:"html"`
	Selector  string  `json:"selector"`
	Filename  string  `json:"filename"`
	Size      string  `json:"size"`
	Landscape bool    `json:"landscape"`
	Margin    float64 `json:"margin"`
	Scale     float64 `json:"scale"`
	Header    string  `json:"header"`
	Footer    string  `json:"footer"`
}

func (req exportRequest) options() (*export.Options, error) {
	opts := &export.Options{Filename: req.Filename}
	if req.Size != "" {
		size, ok := pageSizes[strings.ToLower(req.Size)]
		if !ok {
			return nil, fmt.Errorf("unknown paper size %q", req.Size)
		}
		opts.Page.Size = size
	}
	if req.Landscape {
		opts.Page.Orientation = export.Landscape
	}
	if req.Margin > 0 {
		opts.Page.Margin = export.UniformMargin(req.Margin)
	}
	opts.Page.Scale = req.Scale
	opts.Page.HeaderTemplate = req.Header
	opts.Page.FooterTemplate = req.Footer
	opts.Page.DisplayHeaderFooter = req.Header != "" || req.Footer != ""
	return opts, nil
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.browser == nil {
		http.Error(w, "pdf export is disabled", http.StatusServiceUnavailable)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExportBody)).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.HTML == "" || req.Selector == "" {
		http.Error(w, "html and selector are required", http.StatusBadRequest)
		return
	}
	opts, err := req.options()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tab, err := s.browser.OpenHTML(ctx, req.HTML)
	if err != nil {
		s.faults.Handle(ctx, kindExport, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer tab.Close()

	res, err := export.New(tab, tab, export.WithLogger(s.logger)).GeneratePDF(ctx, req.Selector, opts)
	switch {
	case errors.Is(err, export.ErrInvalidElement), errors.Is(err, export.ErrImageLoad):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		s.faults.Handle(ctx, kindExport, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename()}))
	if _, err := res.WriteTo(w); err != nil {
		s.logger.WarnContext(ctx, "writing pdf", slog.Any("error", err))
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	noExport, _ := cmd.Flags().GetBool("no-export")

	var b *browser.Browser
	if !noExport {
		b, err = newBrowser(cfg, logger)
		if err != nil {
			logger.Warn("pdf export disabled", "error", err)
		} else {
			defer b.Close()
		}
	}

	srv := newServer(cfg, logger, os.DirFS(cfg.SiteDir), b)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.preload(ctx); err != nil {
		return fmt.Errorf("failed to load dictionaries: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("starting server",
		"addr", cfg.Addr,
		"site_dir", cfg.SiteDir,
		"supported", cfg.Supported,
		"export", b != nil,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown timed out",
			"timeout", shutdownTimeout.String(),
			"error", err,
		)
		return nil
	}
	logger.Info("shutdown complete")
	return nil
}
