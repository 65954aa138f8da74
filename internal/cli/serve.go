package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/pkg/errors"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/navigator"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render/sink"
	"github.com/matzehuels/packnav/pkg/source"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	dir     string // directory served under /payloads/
	noCache bool
}

// serveCommand creates the serve command. It exposes the root tree, the
// payloads of nested levels and SVG snapshots of any navigator state.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [tree]",
		Short: "Serve payloads and live SVG snapshots over HTTP",
		Long: `Serve starts an HTTP server with these endpoints:

  GET /tree                 the root tree as JSON
  GET /payloads/{key}       a nested payload from the store or --dir
  GET /snapshot.svg?path=   the navigator zoomed along path, as SVG
  GET /stats                counters of expansions, cache and upstream traffic

Point node urls at http://<addr>/payloads/<key> to serve a whole hierarchy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default: [serve] addr)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory of JSON payloads served under /payloads/")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP payload cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	fetcher, closeFetcher, err := c.NewFetcher(opts.noCache)
	if err != nil {
		return err
	}
	defer closeFetcher()

	tree, err := LoadTree(ctx, fetcher, input)
	if err != nil {
		return err
	}

	payloads := source.Router{Files: source.Files{Root: opts.dir}, Store: fetcher.Store}
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.newServer(tree, payloads, fetcher),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	printSuccess("Serving %s", StyleHighlight.Render(input))
	printKeyValue("Address", StyleLink.Render("http://"+opts.addr))
	printNextStep("Snapshot", "curl http://"+opts.addr+"/snapshot.svg")

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// server holds what the HTTP handlers share. The root tree is cloned for
// every snapshot, so requests never see each other's expansions.
type server struct {
	cli      *CLI
	log      *log.Logger
	root     *pack.Node
	payloads navigator.Fetcher
	fetcher  navigator.Fetcher
	stats    *stats
}

// newServer builds the chi router. payloads answers /payloads/ requests;
// fetcher loads nested levels while rendering snapshots. The server's
// counters replace the process-wide observability hooks.
func (c *CLI) newServer(root *pack.Node, payloads, fetcher navigator.Fetcher) http.Handler {
	s := &server{cli: c, log: c.Logger, root: root, payloads: payloads, fetcher: fetcher, stats: newStats()}
	s.stats.register()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/tree", s.handleTree)
	r.Get("/payloads/*", s.handlePayload)
	r.Get("/snapshot.svg", s.handleSnapshot)
	r.Method(http.MethodGet, "/stats", s.stats)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	writeTree(w, s.root)
}

func (s *server) handlePayload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" || strings.Contains(key, "..") {
		http.Error(w, "invalid payload key", http.StatusBadRequest)
		return
	}
	tree, err := s.lookup(r.Context(), key)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeTree(w, tree)
}

// lookup tries the store first, then a JSON file named key or key.json.
func (s *server) lookup(ctx context.Context, key string) (*pack.Node, error) {
	var last error
	for _, ref := range []string{source.SQLiteScheme + key, key, key + ".json"} {
		tree, err := s.payloads.Fetch(ctx, ref)
		if err == nil {
			return tree, nil
		}
		last = err
	}
	return nil, last
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sess, err := s.cli.newSession(s.root.Clone(), s.fetcher)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := sess.walk(r.Context(), q.Get("path")); err != nil {
		s.fail(w, err)
		return
	}

	opts := &renderOpts{noLabels: q.Get("labels") == "0"}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(sink.RenderSVG(sess.scene.Snapshot(), s.cli.svgOptions(opts)...))
}

// fail maps an error to a status code.
func (s *server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, source.ErrNotFound), errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	case stderrors.Is(err, source.ErrUnsupportedScheme):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidTree), errors.Is(err, errors.ErrCodeInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeFetchFailed), stderrors.Is(err, source.ErrNetwork):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

func writeTree(w http.ResponseWriter, tree *pack.Node) {
	w.Header().Set("Content-Type", "application/json")
	if err := pnio.WriteJSON(tree, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
