package ui

import (
	"sync"

	"github.com/five82/boardwalk/internal/manage"
)

var (
	_ manage.Confirmer = (*Host)(nil)
	_ manage.Mover     = (*Host)(nil)
)

// Host queues the controller's confirmation and move requests for the
// running Model, which turns them into modals. Create it before the
// controller and pass it to both.
type Host struct {
	mu     sync.Mutex
	prompt *manage.Prompt
	move   *moveRequest
}

type moveRequest struct {
	dashboardUIDs []string
	afterSave     manage.Fetch
}

// NewHost returns an empty Host.
func NewHost() *Host {
	return &Host{}
}

// Confirm implements manage.Confirmer. A newer prompt replaces one the
// Model has not picked up yet.
func (h *Host) Confirm(prompt manage.Prompt) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompt = &prompt
}

// Move implements manage.Mover.
func (h *Host) Move(dashboardUIDs []string, afterSave manage.Fetch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.move = &moveRequest{
		dashboardUIDs: append([]string(nil), dashboardUIDs...),
		afterSave:     afterSave,
	}
}

func (h *Host) takePrompt() (manage.Prompt, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.prompt == nil {
		return manage.Prompt{}, false
	}
	p := *h.prompt
	h.prompt = nil
	return p, true
}

func (h *Host) takeMove() (moveRequest, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.move == nil {
		return moveRequest{}, false
	}
	req := *h.move
	h.move = nil
	return req, true
}
