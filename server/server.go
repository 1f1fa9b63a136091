package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"ai_text_improver/revision"
	"ai_text_improver/settings"
)

const (
	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 1 << 20
)

type Server struct {
	reviser *revision.Reviser
	store   settings.Store
	timeout time.Duration
	log     zerolog.Logger
}

func New(reviser *revision.Reviser, store settings.Store, timeout time.Duration, log zerolog.Logger) (*Server, error) {
	if reviser == nil {
		return nil, errors.New("reviser required")
	}
	if store == nil {
		return nil, errors.New("settings store required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Server{
		reviser: reviser,
		store:   store,
		timeout: timeout,
		log:     log,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/revise", s.handleRevise)
	mux.HandleFunc("/api/tones", s.handleTones)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type reviseReq struct {
	Text               string `json:"text"`
	Tone               string `json:"tone"`
	ImproveReadability bool   `json:"improve_readability"`
}

type reviseResp struct {
	Text string `json:"text"`
}

type toneResp struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handleRevise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req reviseReq
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	tone := revision.ToneOriginal
	if req.Tone != "" {
		t, err := revision.ParseTone(req.Tone)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		tone = t
	}

	// 凭证由宿主持有，每次请求时读取
	key := settings.APIKey(s.store)
	if key == "" {
		writeError(w, http.StatusPreconditionFailed, "api key not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	text, err := s.reviser.Revise(ctx, revision.Request{
		Text:       req.Text,
		Config:     revision.Config{Tone: tone, ImproveReadability: req.ImproveReadability},
		Credential: key,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviseResp{Text: text})
}

func (s *Server) handleTones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var out []toneResp
	for _, t := range revision.Tones() {
		out = append(out, toneResp{Value: string(t), Label: t.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

// --- Helpers ---

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
