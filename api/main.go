package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/DeafMist/cve-radar/internal/config"
	"github.com/DeafMist/cve-radar/internal/logger"
	"github.com/DeafMist/cve-radar/internal/models"
	"github.com/DeafMist/cve-radar/internal/nvd"
	"github.com/DeafMist/cve-radar/internal/render"
	"github.com/DeafMist/cve-radar/internal/web"
)

type advisorySearcher interface {
	Search(ctx context.Context, req nvd.SearchRequest) ([]models.Advisory, error)
}

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := nvd.New(cfg.NVD.URL, cfg.NVD.APIKey, cfg.NVD.Timeout, log)
	if err != nil {
		log.Error("init nvd client", slog.Any("err", err))
		os.Exit(1)
	}
	if cfg.NVD.APIKey == "" {
		log.Warn("NVD_API_KEY is not set, upstream requests are subject to public rate limits")
	}

	static, err := web.Static(cfg.StaticDir)
	if err != nil {
		log.Error("init static files", slog.Any("err", err))
		os.Exit(1)
	}

	srv := newServer(log, cfg, client, static)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.NVD.Timeout + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting",
			slog.String("addr", cfg.BindAddr),
			slog.String("nvd_url", cfg.NVD.URL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type server struct {
	log    *slog.Logger
	cfg    *config.API
	nvd    advisorySearcher
	static fs.FS
	now    func() time.Time
}

func newServer(log *slog.Logger, cfg *config.API, searcher advisorySearcher, static fs.FS) *server {
	return &server{
		log:    log,
		cfg:    cfg,
		nvd:    searcher,
		static: static,
		now:    time.Now,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Post("/fetch_cves", s.handleFetchCVEs)
	r.Get("/*", web.FileServer(s.static).ServeHTTP)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleFetchCVEs(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxFormBytes))
	if err := r.ParseForm(); err != nil {
		s.log.Warn("parse form", slog.Any("err", err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form body"})
		return
	}

	keyword := strings.TrimSpace(r.PostForm.Get("keyword"))
	req := nvd.BuildQuery(keyword, s.now())

	searchID := middleware.GetReqID(r.Context())
	if searchID == "" {
		searchID = uuid.NewString()
	}
	log := s.log.With(slog.String("search_id", searchID))

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.NVD.Timeout)
	defer cancel()

	upstream := "ok"
	items, err := s.nvd.Search(ctx, req)
	if err != nil {
		upstream = "error"
		items = nil
		attrs := []any{slog.String("keyword", keyword), slog.Any("err", err)}
		var upErr *nvd.UpstreamError
		if errors.As(err, &upErr) {
			attrs = append(attrs, slog.String("kind", string(upErr.Kind)), slog.Int("status", upErr.StatusCode))
		}
		log.Warn("advisory search failed", attrs...)
	} else {
		log.Info("advisory search",
			slog.String("keyword", keyword),
			slog.Int("results", len(items)),
		)
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, render.PageData{Keyword: keyword, Results: render.Results(items)}); err != nil {
		log.Error("render page", slog.Any("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Upstream-Status", upstream)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Debug("write response", slog.Any("err", err))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
