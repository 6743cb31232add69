// Package webhook is the inbound HTTP boundary: it validates raw gateway
// callbacks, derives quiz events, and maps engine errors onto status codes.
package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	coreconfig "github.com/m3rciful/flagbot/core/config"
	"github.com/m3rciful/flagbot/core/logger"
	"github.com/m3rciful/flagbot/gateway"
	"github.com/m3rciful/flagbot/quiz"
	"github.com/m3rciful/flagbot/results"
)

const maxBodyBytes = 64 * 1024

// Handler exposes the bot's HTTP endpoints.
type Handler struct {
	engine  *quiz.Engine
	results *results.Store
	flags   http.Handler
}

// NewHandler wires the quiz engine with the optional results store and the
// flag image passthrough.
func NewHandler(engine *quiz.Engine, res *results.Store, flags http.Handler) *Handler {
	return &Handler{engine: engine, results: res, flags: flags}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", h.ServeWebhook)
	mux.HandleFunc("/quiz/start", h.ServeStart)
	mux.HandleFunc("/leaderboard", h.ServeLeaderboard)
	mux.HandleFunc("/healthz", h.ServeHealth)
	if h.flags != nil {
		mux.Handle("/flags/", h.flags)
	}
}

// ServeWebhook consumes one inbound player action and acknowledges it.
func (h *Handler) ServeWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r = r.WithContext(logger.WithHandler(r.Context(), "webhook"))

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	userID, value, err := ParsePayload(body)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	ctx := logger.WithUserID(r.Context(), userID)
	ev := quiz.DeriveEvent(value)
	intent, err := h.engine.HandleEvent(ctx, userID, ev)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"intent": string(intent.Kind),
	})
}

// ServeStart begins a quiz for a user independent of inbound events.
func (h *Handler) ServeStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r = r.WithContext(logger.WithHandler(r.Context(), "quiz.start"))

	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeFailure(w, r, &ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.To) == "" {
		h.writeFailure(w, r, &ValidationError{Field: "to", Reason: "missing user identifier"})
		return
	}

	ctx := logger.WithUserID(r.Context(), req.To)
	if err := h.engine.StartQuiz(ctx, req.To); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ServeLeaderboard returns the top finished games from the results store.
func (h *Handler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r = r.WithContext(logger.WithHandler(r.Context(), "leaderboard"))
	if h.results == nil {
		writeError(w, http.StatusNotFound, "leaderboard not enabled")
		return
	}
	entries, err := h.results.Top(r.Context(), 10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ServeHealth reports process liveness.
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeFailure maps the error taxonomy onto HTTP status codes: validation ->
// 400, missing configuration -> 500, failed dispatch -> 502 (the session
// mutation is already applied), anything else -> 500.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		valErr  *ValidationError
		cfgErr  *coreconfig.ConfigurationError
		dispErr *gateway.DispatchError
	)
	switch {
	case errors.As(err, &valErr):
		if logger.ShouldSampleDebug() {
			logger.Debug(r.Context(), "http", "request.invalid",
				slog.String("err", valErr.Error()),
			)
		}
		writeError(w, http.StatusBadRequest, valErr.Error())
	case errors.As(err, &cfgErr):
		logger.Error(r.Context(), "http", "request.config_error",
			slog.String("err", cfgErr.Error()),
		)
		writeError(w, http.StatusInternalServerError, "configuration error")
	case errors.As(err, &dispErr):
		logger.Error(r.Context(), "http", "request.dispatch_error",
			slog.String("err", dispErr.Error()),
		)
		writeError(w, http.StatusBadGateway, "message delivery failed")
	default:
		logger.Error(r.Context(), "http", "request.error",
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}
