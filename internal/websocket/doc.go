// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package websocket implements the storefront chat: a hub that relays chat
messages to every connected browser over gorilla/websocket.

Key Components:

  - Hub: the set of connected clients and the broadcast queue
  - Client: one WebSocket connection with a read and a write goroutine
  - Message: the JSON frame exchanged with browsers

Message Types:

	{"type":"chat_message","data":{"message":"hi","sent_at":"2026-10-18T09:00:00Z"}}
	{"type":"ping"}  answered with {"type":"pong"}
	{"type":"error","data":{"error":"chat message is empty"}}

A client sends a chat message as {"type":"chat_message","data":"hi"} or
with data {"message":"hi"}; the hub rebroadcasts it to every client,
including the sender. The HTTP API posts into the same hub.

Usage:

	hub := websocket.NewHub()
	tree.AddMessagingService(services.NewChatHubService(hub))

	// in the upgrade handler
	client := websocket.NewClient(hub, conn)
	hub.Register(client)
	client.Start()

Thread Safety:

Register, Unregister, BroadcastChat and ClientCount are safe for concurrent
use. Broadcasts never block the caller; a full queue fails with ErrHubBusy,
and a client whose own queue is full is disconnected.
*/
package websocket
