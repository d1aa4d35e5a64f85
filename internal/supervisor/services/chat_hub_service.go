// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package services

import (
	"context"
)

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// ChatHubService runs the chat hub under suture. The hub closes its
// clients when the context is canceled and can be started again after a
// restart.
//
//	hub := websocket.NewHub()
//	tree.AddMessagingService(services.NewChatHubService(hub))
type ChatHubService struct {
	hub  ContextHub
	name string
}

// NewChatHubService wraps hub.
func NewChatHubService(hub ContextHub) *ChatHubService {
	return &ChatHubService{
		hub:  hub,
		name: "chat-hub",
	}
}

// Serve implements suture.Service.
func (s *ChatHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer for suture logs.
func (s *ChatHubService) String() string {
	return s.name
}
