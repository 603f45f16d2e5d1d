package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"linkscout/internal/catalog"
	"linkscout/internal/chat"
	"linkscout/internal/convo"
)

type ChatHandler struct {
	orchestrator *chat.Orchestrator
}

func NewChatHandler(o *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: o}
}

type chatRequest struct {
	History  []convo.Turn `json:"history"`
	Filter   convo.Filter `json:"filter"`
	Provider string       `json:"provider,omitempty"`
}

// chatResponse is the wire shape the UI consumes; grounding links are
// nested under "web" chunks.
type chatResponse struct {
	Text            string           `json:"text"`
	Type            string           `json:"type"`
	Platform        catalog.Platform `json:"platform,omitempty"`
	GroundingChunks []groundingChunk `json:"groundingChunks,omitempty"`
}

type groundingChunk struct {
	Web groundingWeb `json:"web"`
}

type groundingWeb struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

func toChatResponse(r convo.BotResponse) chatResponse {
	out := chatResponse{Text: r.Text, Type: r.Type, Platform: r.Platform}
	for _, l := range r.GroundingLinks {
		out.GroundingChunks = append(out.GroundingChunks, groundingChunk{Web: groundingWeb{URI: l.URI, Title: l.Title}})
	}
	return out
}

func sessionFrom(r *http.Request) convo.Session {
	id := r.Header.Get("X-Session-Id")
	if id == "" {
		// Anonymous: no saved devices, but keep a correlatable id for logs.
		id = "anon-" + uuid.NewString()
	}
	return convo.Session{ID: id, OSHint: r.UserAgent()}
}

// HandleChat is the single chat operation. Orchestrator-level failures
// already resolved to a friendly BotResponse upstream, so this handler
// only ever rejects malformed payloads.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session := sessionFrom(r)
	resp := h.orchestrator.Resolve(r.Context(), req.History, req.Filter, req.Provider, session)
	writeJSON(w, http.StatusOK, toChatResponse(resp))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
