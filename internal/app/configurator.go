package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// ErrSessionNotFound is returned for unknown or ended session ids.
var ErrSessionNotFound = errors.New("session not found")

// ConfiguratorService holds the shop configurator's per-session selection
// state. Sessions are ephemeral: they live only in memory and die with the
// session that created them. Each session is owned by a single client, but
// the store itself is shared, so access is serialized with a mutex.
type ConfiguratorService struct {
	phone string

	mu       sync.Mutex
	sessions map[string]*domain.Selection
}

// NewConfiguratorService creates a session store targeting the given
// WhatsApp number (E.164 without plus).
func NewConfiguratorService(phone string) *ConfiguratorService {
	return &ConfiguratorService{
		phone:    phone,
		sessions: make(map[string]*domain.Selection),
	}
}

// Start opens a new configurator session with an empty selection.
func (c *ConfiguratorService) Start() (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[id] = &domain.Selection{}
	return id, nil
}

// SelectBean records the bean type choice for a session.
func (c *ConfiguratorService) SelectBean(id string, b domain.BeanType) (domain.Selection, error) {
	return c.mutate(id, func(s *domain.Selection) { s.ChooseBean(b) })
}

// SelectStage records the processing stage choice for a session.
func (c *ConfiguratorService) SelectStage(id string, st domain.Stage) (domain.Selection, error) {
	return c.mutate(id, func(s *domain.Selection) { s.ChooseStage(st) })
}

// SelectOrigin records the origin choice for a session.
func (c *ConfiguratorService) SelectOrigin(id string, o domain.Origin) (domain.Selection, error) {
	return c.mutate(id, func(s *domain.Selection) { s.ChooseOrigin(o) })
}

// State returns a snapshot of the session's current selection.
func (c *ConfiguratorService) State(id string) (domain.Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[id]
	if !ok {
		return domain.Selection{}, ErrSessionNotFound
	}
	return *s, nil
}

// EnquiryLink builds the WhatsApp hand-off URL for a complete selection.
// Returns domain.ErrSelectionIncomplete until all three steps are chosen.
func (c *ConfiguratorService) EnquiryLink(id string) (string, error) {
	sel, err := c.State(id)
	if err != nil {
		return "", err
	}
	return domain.ShopEnquiryLink(c.phone, sel)
}

// End discards a session. Ending an unknown session is a no-op: navigating
// away twice is not an error.
func (c *ConfiguratorService) End(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
}

func (c *ConfiguratorService) mutate(id string, change func(*domain.Selection)) (domain.Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[id]
	if !ok {
		return domain.Selection{}, ErrSessionNotFound
	}
	change(s)
	return *s, nil
}
