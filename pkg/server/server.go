package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
	"github.com/matzehuels/wordcloud/pkg/weights"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// Defaults for Options.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 1 << 20
	shutdownTimeout    = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Timeout     time.Duration // Per-request timeout (default 10s)
	MaxBodySize int64         // Limit for PUT bodies (default 1 MiB)
	EmbedFont   bool          // Embed the font in SVG frames
	Logger      *log.Logger
}

// Server serves one cloud and its render loop.
type Server struct {
	cloud  *cloud.Cloud
	loop   *render.Loop
	opts   Options
	logger *log.Logger
	id     uuid.UUID
	router chi.Router
}

// New builds the router. The loop must be the publisher the cloud was created
// with so frames follow the newest layout.
func New(c *cloud.Cloud, loop *render.Loop, opts Options) *Server {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodySize == 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cloud:  c,
		loop:   loop,
		opts:   opts,
		logger: logger,
		id:     uuid.New(),
	}
	s.router = s.routes()
	return s
}

// ID identifies this server instance in health responses.
func (s *Server) ID() uuid.UUID { return s.id }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.opts.Timeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "instance", s.id)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/words", s.handleGetWords)
		r.Put("/words", s.handlePutWords)
		r.Delete("/words", s.handleDeleteWords)
		r.Post("/words/{label}/add", s.handleAdd)
		r.Post("/words/{label}/remove", s.handleRemove)
		r.Post("/reset", s.handleReset)
		r.Get("/cloud", s.handleCloud)
		r.Get("/cloud.svg", s.handleCloudSVG)
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

type commandResponse struct {
	Label      string `json:"label,omitempty"`
	Weight     int    `json:"weight"`
	Generation uint64 `json:"generation"`
	Warning    string `json:"warning,omitempty"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Instance   string `json:"instance"`
	Version    string `json:"version"`
	Generation uint64 `json:"generation"`
	Frames     uint64 `json:"frames"`
	Words      int    `json:"words"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.loop.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Instance:   s.id.String(),
		Version:    buildinfo.Version,
		Generation: st.Published,
		Frames:     st.Frames,
		Words:      len(s.cloud.Visible()),
	})
}

func (s *Server) handleGetWords(w http.ResponseWriter, r *http.Request) {
	data, err := words.Encode(s.cloud.Entries())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode words"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handlePutWords(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodySize))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if !weights.Validate(data) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "body must be an array of [label, weight] pairs"))
		return
	}
	set, err := words.Decode(data)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode words"))
		return
	}

	var resp commandResponse
	if !s.command(w, r, s.cloud.Replace(r.Context(), set), &resp) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteWords(w http.ResponseWriter, r *http.Request) {
	var resp commandResponse
	if !s.command(w, r, s.cloud.Clear(r.Context()), &resp) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.labelCommand(w, r, s.cloud.Add)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.labelCommand(w, r, s.cloud.Remove)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var resp commandResponse
	if !s.command(w, r, s.cloud.ResetAll(r.Context()), &resp) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloud(w http.ResponseWriter, r *http.Request) {
	gen := s.loop.Current()
	if gen == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no layout yet"))
		return
	}
	data, err := sink.RenderJSON(gen, nil)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render json"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleCloudSVG(w http.ResponseWriter, r *http.Request) {
	var opts []sink.SVGOption
	if s.opts.EmbedFont {
		opts = append(opts, sink.WithEmbeddedFont())
	}
	svg := sink.NewSVG(opts...)
	if err := s.loop.PaintTo(s.loop.Clock().Now(), svg); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg.Bytes())
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) labelCommand(w http.ResponseWriter, r *http.Request, cmd func(context.Context, string) error) {
	label, err := labelParam(r)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidCommand, err, "bad label"))
		return
	}

	resp := commandResponse{Label: label}
	if !s.command(w, r, cmd(r.Context(), label), &resp) {
		return
	}
	resp.Weight, _ = s.cloud.Weight(label)
	writeJSON(w, http.StatusOK, resp)
}

// command turns a command error into a response. Warnings are reported in resp
// and the request proceeds; anything else is written as an error.
func (s *Server) command(w http.ResponseWriter, r *http.Request, err error, resp *commandResponse) bool {
	resp.Generation = s.cloud.Requested()
	if err == nil {
		return true
	}
	if errors.IsWarning(err) {
		s.logger.Warn("command degraded", "path", r.URL.Path, "err", err)
		resp.Warning = errors.UserMessage(err)
		return true
	}
	s.writeError(w, r, err)
	return false
}

// labelParam returns the decoded {label} segment. chi matches on the raw path
// when the request carries escaped slashes.
func labelParam(r *http.Request) (string, error) {
	label := chi.URLParam(r, "label")
	if r.URL.RawPath == "" {
		return label, nil
	}
	return url.PathUnescape(label)
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
