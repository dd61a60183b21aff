// Package server exposes the aquarium to browser clients over websockets.
package server

import (
	"sync"
	"sync/atomic"
)

// client is one connected session.
type client struct {
	id      string
	send    chan []byte
	dropped atomic.Uint64
}

// trySend queues b without blocking. Slow clients lose frames.
func (c *client) trySend(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Hub tracks connected clients and fans frames out to them.
type Hub struct {
	mu         sync.Mutex
	clients    map[string]*client
	sendBuffer int
}

// NewHub creates an empty hub.
func NewHub(sendBuffer int) *Hub {
	if sendBuffer < 1 {
		sendBuffer = 1
	}
	return &Hub{
		clients:    make(map[string]*client),
		sendBuffer: sendBuffer,
	}
}

func (h *Hub) register(id string) *client {
	c := &client{id: id, send: make(chan []byte, h.sendBuffer)}
	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

// Broadcast queues b for every client.
func (h *Hub) Broadcast(b []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.trySend(b)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
