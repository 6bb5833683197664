package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"captionfix/internal/corrector"
	"captionfix/internal/history"
	"captionfix/internal/transcript"
)

type transcriptRequest struct {
	URL     string `json:"url"`
	Correct *bool  `json:"correct"` // default true
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	correct := true
	if req.Correct != nil {
		correct = *req.Correct
	}

	report, err := s.service.Lookup(r.Context(), req.URL, correct)
	if err != nil {
		switch {
		case errors.Is(err, transcript.ErrInvalidVideoID),
			errors.Is(err, corrector.ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, transcript.ErrUpstreamUnavailable):
			s.writeError(w, http.StatusBadGateway, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				s.writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = parsed
		}

		entries, err := s.store.Recent(r.Context(), limit)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"history": entries})

	case http.MethodDelete:
		if err := s.store.Clear(r.Context()); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"cleared": true})

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cfg := s.manager.GetConfig()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"correctionEnabled": cfg.IsCorrectionEnabled(),
		"historyEnabled":    s.store != nil,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing sensible left to do.
		return
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
