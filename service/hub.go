package service

import (
	"log"
	"sync"

	"github.com/pkg/errors"
)

// Hub starts registered services in registration order and stops them in reverse
type Hub struct {
	mu       sync.Mutex
	services []Service
	names    map[string]struct{}
	started  []Service
}

func NewHub() *Hub {
	return &Hub{names: make(map[string]struct{})}
}

// Register adds a service; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.names[name]; exists {
		return errors.Errorf("service already registered: %s", name)
	}
	h.names[name] = struct{}{}
	h.services = append(h.services, svc)
	return nil
}

// StartAll starts every service
// On failure, already-started services are stopped in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	for _, svc := range h.services {
		if err := svc.Start(); err != nil {
			h.stopStarted()
			return errors.Wrapf(err, "service %s start failed", svc.Name())
		}
		h.started = append(h.started, svc)
	}
	return nil
}

// StopAll stops started services in reverse order; errors are logged, not returned
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopStarted()
}

func (h *Hub) stopStarted() {
	for i := len(h.started) - 1; i >= 0; i-- {
		svc := h.started[i]
		if err := svc.Stop(); err != nil {
			log.Printf("[service] %s stop: %v", svc.Name(), err)
		}
	}
	h.started = nil
}
