package server

import (
	"net/http"

	"linkscout/internal/gateway/handler"
	"linkscout/internal/gateway/middleware"
)

func NewMux(chatHandler *handler.ChatHandler, adminHandler *handler.AdminHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", chatHandler.HandleChat)
	mux.HandleFunc("GET /api/chat/ws", chatHandler.HandleChatWS)

	mux.HandleFunc("POST /api/catalog/invalidate", adminHandler.HandleInvalidateCatalog)
	mux.HandleFunc("GET /healthz", adminHandler.HandleHealth)

	return middleware.CORS(mux)
}
