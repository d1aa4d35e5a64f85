// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/validation"
	ws "github.com/tomtom215/stylematch/internal/websocket"
)

// ChatResponse is the data of POST /api/v1/chat.
type ChatResponse struct {
	Message string `json:"message"`
	Clients int    `json:"clients"`
}

// ChatSocket handles GET /ws by upgrading to a chat WebSocket.
func (router *Router) ChatSocket(w http.ResponseWriter, r *http.Request) {
	hub := router.cfg.Chat
	if hub == nil {
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Chat unavailable")
		return
	}

	upgrader := router.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(hub, conn)
	hub.Register(client)
	client.Start()
}

func (router *Router) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      router.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts origins allowed by the CORS configuration.
// Browsers always send Origin on a WebSocket handshake, so a missing one is
// rejected.
func (router *Router) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	for _, allowed := range router.mw.config.CORSAllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// PostChat handles POST /api/v1/chat by broadcasting the message to every
// connected chat client.
func (router *Router) PostChat(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	hub := router.cfg.Chat
	if hub == nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Chat unavailable")
		return
	}

	var req validation.ChatRequest
	if err := router.decodeJSON(w, r, &req); err != nil {
		logWarnOrError(r, http.StatusBadRequest).Err(err).Msg("Invalid chat body")
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, verr.Error(), verr.Details())
		return
	}

	text, err := ws.NormalizeChat(*req.Message)
	if err == nil {
		err = hub.BroadcastChat(text)
	}
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(ChatResponse{Message: text, Clients: hub.ClientCount()})
}

// LegacyChat handles POST /chat. It takes {"message": "..."} as JSON or a
// urlencoded form and answers with a plain "OK".
func (router *Router) LegacyChat(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	fail := func(status int, msg string) {
		rw.JSON(status, map[string]string{"error": msg})
	}

	hub := router.cfg.Chat
	if hub == nil {
		fail(http.StatusServiceUnavailable, "chat unavailable")
		return
	}

	rec, err := router.decodeRecord(w, r)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := hub.BroadcastChat(rec["message"]); err != nil {
		status, code := errorStatus(err)
		logWarnOrError(r, status).Str("code", code).Err(err).Msg("Legacy chat failed")
		fail(status, errorMessage(status, err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
