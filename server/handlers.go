package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codetesla51/attemptguard/limiter"
)

// throttleResponse mirrors limiter.Result with the optional fields left out
// when they carry no meaning.
type throttleResponse struct {
	IsLimited         bool   `json:"isLimited"`
	WaitTimeSeconds   *int   `json:"waitTimeSeconds,omitempty"`
	AttemptsRemaining *int   `json:"attemptsRemaining,omitempty"`
	Message           string `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newThrottleResponse(res limiter.Result) throttleResponse {
	out := throttleResponse{IsLimited: res.Limited}
	if res.Limited {
		wait := res.WaitSeconds
		out.WaitTimeSeconds = &wait
		out.Message = "Too many attempts. Try again in " + limiter.FormatWaitTime(wait) + "."
		return out
	}
	remaining := res.Remaining
	out.AttemptsRemaining = &remaining
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCheck always answers 200: a limited key is a normal answer to a query.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	res, err := s.limiter.Check(r.Context(), key)
	if err != nil {
		s.backendError(w, r, "check", key, err)
		return
	}
	writeJSON(w, http.StatusOK, newThrottleResponse(res))
}

// handleRecord answers 429 with Retry-After when the attempt locked the key.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	res, err := s.limiter.Record(r.Context(), key)
	if err != nil {
		s.backendError(w, r, "record", key, err)
		return
	}

	status := http.StatusOK
	if res.Limited {
		w.Header().Set("Retry-After", strconv.Itoa(res.WaitSeconds))
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, newThrottleResponse(res))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := s.limiter.Clear(r.Context(), key); err != nil {
		s.backendError(w, r, "clear", key, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// backendError answers a failed limiter call. A missing key is the caller's
// fault; anything else is reported as a backend outage.
func (s *Server) backendError(w http.ResponseWriter, r *http.Request, op, key string, err error) {
	if errors.Is(err, limiter.ErrEmptyKey) {
		writeError(w, http.StatusBadRequest, "action key must not be empty")
		return
	}
	s.logger.Error("throttle operation failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "throttle backend unavailable")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
