// Package server exposes a fitted ID3Classifier over HTTP.
//
//	GET  /api/v1/health   liveness and model summary
//	GET  /api/v1/tree     the tree as JSON, or as text with ?format=text
//	POST /api/v1/predict  {"records": [{...}]} -> {"predictions": [...]}
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
)

// MaxRecords bounds the size of one predict request.
const MaxRecords = 10000

// Server serves predictions from one fitted classifier. The classifier is
// only read, so requests are handled concurrently without locking.
type Server struct {
	model   *tree.ID3Classifier
	router  *chi.Mux
	logger  log.Logger
	timeout time.Duration
	started time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and error logs.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTimeout bounds the handling time of each request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// New creates a Server for clf, which must be fitted.
func New(clf *tree.ID3Classifier, opts ...Option) (*Server, error) {
	if clf == nil || !clf.IsFitted() {
		return nil, errors.NewNotFittedError("ID3Classifier", "server.New")
	}
	s := &Server{
		model:   clf,
		timeout: 60 * time.Second,
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("server")
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/tree", s.handleTree)
	r.Post("/api/v1/predict", s.handlePredict)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down server")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				log.DurationMsKey, time.Since(start).Milliseconds(),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	depth, err := s.model.Depth()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "model unavailable", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"model":      "ID3Classifier",
		"id":         s.model.ID(),
		"attributes": s.model.Attributes(),
		"classes":    s.model.Classes(),
		"depth":      depth,
		"uptime":     time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := s.model.Render(w); err != nil {
			s.logger.Error("Rendering tree failed", err)
		}
		return
	}
	doc, err := s.model.Document()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "model unavailable", err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// PredictRequest is the body of POST /api/v1/predict.
type PredictRequest struct {
	Records []dataset.Record `json:"records"`
}

// PredictionResult is one entry of PredictResponse.
type PredictionResult struct {
	Label    string `json:"label,omitempty"`
	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
}

// PredictResponse is the body returned by POST /api/v1/predict.
type PredictResponse struct {
	Predictions []PredictionResult `json:"predictions"`
	Fallbacks   int                `json:"fallbacks"`
	Failures    int                `json:"failures"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.Records) == 0 {
		respondError(w, http.StatusBadRequest, "records are required", nil)
		return
	}
	if len(req.Records) > MaxRecords {
		respondError(w, http.StatusRequestEntityTooLarge, "too many records", nil)
		return
	}

	preds, err := s.model.Predict(req.Records)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "prediction failed", err)
		return
	}

	resp := PredictResponse{Predictions: make([]PredictionResult, len(preds))}
	for i, p := range preds {
		if p.Err != nil {
			resp.Predictions[i] = PredictionResult{Error: p.Err.Error()}
			resp.Failures++
			continue
		}
		resp.Predictions[i] = PredictionResult{Label: p.Label, Fallback: p.Fallback}
		if p.Fallback {
			resp.Fallbacks++
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	respondJSON(w, status, body)
}
