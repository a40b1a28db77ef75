package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/owlim/ytscribe/internal/config"
	"github.com/owlim/ytscribe/internal/extractor"
	"github.com/owlim/ytscribe/pkg/transcript"
)

const failureHint = "video may not have captions or they are disabled"

// Extractor is what the handlers need from the transcript service.
type Extractor interface {
	Extract(ctx context.Context, videoArg string, opts transcript.Options) (*extractor.Result, []extractor.Attempt, error)
}

type Server struct {
	*mux.Router
	extractor Extractor
	logger    *slog.Logger
}

func New(ext Extractor, logger *slog.Logger) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		extractor: ext,
		logger:    logger,
	}

	s.Use(corsMiddleware)

	// Primary and backup endpoints are equivalent; clients fail over
	// between the two routes themselves.
	s.HandleFunc("/transcript", s.handleTranscript)
	s.HandleFunc("/transcript/backup", s.handleTranscript)
	s.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return s
}

// ListenAndServe runs the HTTP server with the configured timeouts.
func (s *Server) ListenAndServe(cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	s.logger.Info("listening", slog.String("addr", cfg.Addr))
	return srv.ListenAndServe()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed. Use POST."})
		return
	}

	// A malformed or empty body gets the missing-parameter answer below.
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = extractRequest{}
	}
	if req.VideoID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required parameter: videoId"})
		return
	}

	result, attempts, err := s.extractor.Extract(r.Context(), req.VideoID, transcript.Options{
		Language: req.Lang,
		APIKey:   req.APIKey,
	})
	if err != nil {
		s.logger.Warn("extraction failed",
			slog.String("video_id", req.VideoID),
			slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success:  false,
			Error:    err.Error(),
			Message:  "Transcript extraction failed",
			Hint:     failureHint,
			Attempts: attempts,
		})
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: transcriptData{
			Transcript:         result.Transcript,
			Language:           result.Language,
			Confidence:         result.Confidence,
			Source:             result.Source,
			Segments:           result.SegmentCount,
			VideoID:            req.VideoID,
			VideoTitle:         result.VideoTitle,
			AvailableLanguages: result.AvailableLanguages,
		},
		Message:  fmt.Sprintf("Transcript extracted via %s", result.Source),
		Attempts: attempts,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already committed; nothing sensible left to do.
		return
	}
}
