package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/immersio/immersio/internal/agent"
	"github.com/immersio/immersio/internal/history"
	"github.com/immersio/immersio/internal/language"
	"github.com/immersio/immersio/internal/validation"
	"github.com/immersio/immersio/internal/watch"
)

// Handler implements the API handlers
type Handler struct {
	manager *language.Manager
	chat    *agent.Service
	history *history.Reader
	hub     *watch.Hub

	apiKey        string
	version       string
	maxMessageLen int
}

// NewHandler creates a new Handler.
func NewHandler(m *language.Manager, chat *agent.Service, hist *history.Reader, hub *watch.Hub, apiKey, version string, maxMessageLen int) *Handler {
	return &Handler{
		manager:       m,
		chat:          chat,
		history:       hist,
		hub:           hub,
		apiKey:        apiKey,
		version:       version,
		maxMessageLen: maxMessageLen,
	}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Languages int    `json:"languages"`
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	infos, err := h.manager.List(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Languages: len(infos),
	})
}

// ListLanguages handles GET /api/v1/languages
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	infos, err := h.manager.List(r.Context())
	if err != nil {
		MapDomainError(w, r, err)
		return
	}
	if infos == nil {
		infos = []language.Info{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"languages": infos})
}

// BootstrapRequest is the body of POST /api/v1/languages.
type BootstrapRequest struct {
	Name string `json:"name"`
}

// BootstrapLanguage handles POST /api/v1/languages
func (h *Handler) BootstrapLanguage(w http.ResponseWriter, r *http.Request) {
	var req BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	lang, err := h.manager.Bootstrap(r.Context(), req.Name)
	if err != nil {
		MapDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, lang.Info())
}

// GetLanguage handles GET /api/v1/languages/{name}
func (h *Handler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.manager.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		MapDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lang.Info())
}

// DeleteLanguage handles DELETE /api/v1/languages/{name}
func (h *Handler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		MapDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MessageRequest is the body of POST /api/v1/languages/{name}/messages.
type MessageRequest struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

// MessageResponse carries the tutor's reply.
type MessageResponse struct {
	Reply string `json:"reply"`
	Mode  string `json:"mode"`
}

// SendMessage handles POST /api/v1/languages/{name}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("mode", req.Mode))
	if req.Mode != "" {
		c.Add(validation.ValidateEnum("mode", req.Mode, agent.Modes))
	}
	c.Add(validation.ValidateRequired("text", req.Text))
	c.Add(validation.ValidateUTF8("text", req.Text))
	c.Add(validation.ValidateNoNullBytes("text", req.Text))
	c.Add(validation.ValidateMaxLength("text", req.Text, h.maxMessageLen))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	lang, err := h.manager.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		MapDomainError(w, r, err)
		return
	}

	reply, err := h.chat.SendMessage(r.Context(), lang, req.Mode, req.Text)
	if err != nil {
		MapDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Reply: reply, Mode: req.Mode})
}

// HistoryResponse carries the reconstructed transcript.
type HistoryResponse struct {
	Messages []history.Message `json:"messages"`
}

// History handles GET /api/v1/languages/{name}/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	lang, err := h.manager.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		MapDomainError(w, r, err)
		return
	}

	messages, err := h.history.Read(lang.Dir)
	if err != nil {
		slog.Error("history read failed",
			"component", "api",
			"language", lang.Name,
			"error", err,
		)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if messages == nil {
		messages = []history.Message{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{Messages: messages})
}

// Vocabulary handles GET /api/v1/languages/{name}/vocabulary.
// The document is served verbatim; the agent owns its shape.
func (h *Handler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, func(lang *language.Language) ([]byte, error) {
		return lang.State.ReadVocabulary()
	})
}

// Grammar handles GET /api/v1/languages/{name}/grammar.
func (h *Handler) Grammar(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, func(lang *language.Language) ([]byte, error) {
		return lang.State.ReadGrammar()
	})
}

// Overrides handles GET /api/v1/languages/{name}/overrides.
func (h *Handler) Overrides(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, func(lang *language.Language) ([]byte, error) {
		return lang.State.ReadOverrides()
	})
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request, read func(*language.Language) ([]byte, error)) {
	lang, err := h.manager.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		MapDomainError(w, r, err)
		return
	}

	data, err := read(lang)
	if err != nil {
		MapDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
