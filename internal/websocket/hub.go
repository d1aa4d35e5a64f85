// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package websocket

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylematch/internal/logging"
	"github.com/tomtom215/stylematch/internal/metrics"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeChat  = "chat_message"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
	MessageTypeError = "error"
)

// MaxChatMessageLen bounds a chat message in bytes after trimming.
const MaxChatMessageLen = 1000

const broadcastBuffer = 256

var (
	// ErrEmptyMessage is returned for a chat message that is blank.
	ErrEmptyMessage = errors.New("chat message is empty")

	// ErrMessageTooLong is returned when a chat message exceeds MaxChatMessageLen.
	ErrMessageTooLong = fmt.Errorf("chat message exceeds %d bytes", MaxChatMessageLen)

	// ErrInvalidMessage is returned for a chat message that is not UTF-8.
	ErrInvalidMessage = errors.New("chat message is not valid UTF-8")

	// ErrHubBusy is returned when the broadcast queue is full.
	ErrHubBusy = errors.New("chat hub is busy")
)

// Message represents a WebSocket message
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ChatMessage is the data of a chat_message broadcast.
type ChatMessage struct {
	Message string `json:"message"`
	SentAt  string `json:"sent_at"`
}

// ErrorData is the data of an error message sent to a single client.
type ErrorData struct {
	Error string `json:"error"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
// Register and Unregister are safe to call whether or not Run is active.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan Message
	mu        sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return newHub(broadcastBuffer)
}

func newHub(buffer int) *Hub {
	return &Hub{
		broadcast: make(chan Message, buffer),
		clients:   make(map[*Client]bool),
	}
}

// RunWithContext delivers queued broadcasts until ctx is canceled, then
// closes every connected client and returns ctx.Err(). A supervisor may
// call it again after it returns.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Shutdown wins over a pending broadcast.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetChatClients(n)
	logging.Info().Uint64("client_id", c.id).Int("total_clients", n).Msg("chat client connected")
}

// Unregister removes a client and closes its send queue. Unknown or
// already removed clients are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.SetChatClients(n)
		logging.Info().Uint64("client_id", c.id).Int("total_clients", n).Msg("chat client disconnected")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	closed := h.closeAllClients()
	logging.Info().
		Str("component", "chat-hub").
		Str("reason", string(shutdownReason(ctx))).
		Int("clients_closed", closed).
		Msg("chat hub stopped")
}

func shutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns clients in connection order. Callers hold h.mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients sends message to every client in connection order.
// A client whose queue is full is dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	var dropped int
	for _, c := range h.sortedClients() {
		select {
		case c.send <- message:
		default:
			close(c.send)
			delete(h.clients, c)
			dropped++
		}
	}
	n := len(h.clients)
	h.mu.Unlock()

	if dropped > 0 {
		metrics.SetChatClients(n)
		logging.Warn().Int("dropped_clients", dropped).Int("total_clients", n).Msg("dropped slow chat clients")
	}
}

func (h *Hub) closeAllClients() int {
	h.mu.Lock()
	clients := h.sortedClients()
	for _, c := range clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	metrics.SetChatClients(0)
	return len(clients)
}

// NormalizeChat trims text and checks it is a sendable chat message.
func NormalizeChat(text string) (string, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return "", ErrEmptyMessage
	case !utf8.ValidString(text):
		return "", ErrInvalidMessage
	case len(text) > MaxChatMessageLen:
		return "", ErrMessageTooLong
	}
	return text, nil
}

// BroadcastChat queues a chat message for every connected client. It never
// blocks: a full queue fails with ErrHubBusy.
func (h *Hub) BroadcastChat(text string) error {
	text, err := NormalizeChat(text)
	if err != nil {
		metrics.RecordChatMessage(metrics.ChatRejected)
		return err
	}

	message := Message{
		Type: MessageTypeChat,
		Data: ChatMessage{Message: text, SentAt: time.Now().UTC().Format(time.RFC3339)},
	}

	select {
	case h.broadcast <- message:
		metrics.RecordChatMessage(metrics.ChatDelivered)
		logging.Debug().Int("clients", h.ClientCount()).Int("bytes", len(text)).Msg("broadcast chat message")
		return nil
	default:
		metrics.RecordChatMessage(metrics.ChatDropped)
		logging.Warn().Msg("broadcast channel full, dropping chat message")
		return ErrHubBusy
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
