package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Origin policy is enforced by the CORS layer in front; the
	// websocket endpoint accepts the same origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

// HandleChatWS serves the same resolve operation over a websocket: each
// client frame is one chatRequest, each server frame one chatResponse.
// The session is pinned at upgrade time.
func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("handler: ws upgrade: %v", err)
		return
	}
	defer conn.Close()
	session := sessionFrom(r)

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("handler: ws read: %v", err)
			}
			return
		}
		resp := h.orchestrator.Resolve(r.Context(), req.History, req.Filter, req.Provider, session)
		if err := conn.WriteJSON(toChatResponse(resp)); err != nil {
			log.Printf("handler: ws write: %v", err)
			return
		}
	}
}
