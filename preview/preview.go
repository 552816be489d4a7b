package preview

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"banquet-admin/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("preview not found")

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
)

// Preview is one chef-instructions preview of a booking. It is owned by the
// login session that opened it.
type Preview struct {
	Id        string             `json:"id"`
	SessionId string             `json:"-"`
	Status    Status             `json:"status"`
	Booking   model.Booking      `json:"booking"`
	Menu      model.ResolvedMenu `json:"menu"`
	OpenedAt  time.Time          `json:"opened_at"`
	ReadyAt   time.Time          `json:"ready_at"`
}

type Resolver interface {
	Resolve(ctx context.Context, booking *model.Booking, token string) model.ResolvedMenu
}

type entry struct {
	preview   Preview
	cancel    context.CancelFunc
	dismissed bool
	lastSeen  time.Time
}

type Manager struct {
	resolver Resolver
	timeout  time.Duration
	idleTTL  time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	previews map[string]*entry
	wg       sync.WaitGroup
}

// NewManager bounds each resolution by timeout. Ready previews nobody has
// looked at for idleTTL are evicted by Sweep; a zero idleTTL keeps them.
func NewManager(resolver Resolver, timeout, idleTTL time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		resolver: resolver,
		timeout:  timeout,
		idleTTL:  idleTTL,
		log:      log.With().Str("component", "preview").Logger(),
		now:      time.Now,
		previews: make(map[string]*entry),
	}
}

// Open starts resolving the booking's menu in the background and returns the
// preview in its loading state.
func (m *Manager) Open(booking model.Booking, sessionId, token string) Preview {
	var ctx context.Context
	var cancel context.CancelFunc
	if m.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), m.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	now := m.now()
	e := &entry{
		preview: Preview{
			Id:        uuid.NewString(),
			SessionId: sessionId,
			Status:    StatusLoading,
			Booking:   booking,
			OpenedAt:  now,
		},
		cancel:   cancel,
		lastSeen: now,
	}

	m.mu.Lock()
	m.previews[e.preview.Id] = e
	snapshot := e.preview
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()

		resolved := m.resolver.Resolve(ctx, &booking, token)
		if !m.complete(e, resolved) {
			m.log.Debug().Str("preview", snapshot.Id).Msg("preview dismissed before menu resolved, result discarded")
			return
		}
		m.log.Info().
			Str("preview", snapshot.Id).
			Str("booking", booking.Id.Hex()).
			Str("kind", string(resolved.Kind)).
			Str("source", resolved.Source).
			Msg("chef preview ready")
	}()

	return snapshot
}

// complete stores the result unless the preview was dismissed meanwhile.
func (m *Manager) complete(e *entry, resolved model.ResolvedMenu) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.dismissed {
		return false
	}
	e.preview.Menu = resolved
	e.preview.Status = StatusReady
	e.preview.ReadyAt = m.now()
	e.lastSeen = e.preview.ReadyAt
	return true
}

func (m *Manager) Get(id string) (Preview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.previews[id]
	if !ok {
		return Preview{}, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.preview, nil
}

func (m *Manager) List() []Preview {
	m.mu.Lock()
	previews := make([]Preview, 0, len(m.previews))
	for _, e := range m.previews {
		previews = append(previews, e.preview)
	}
	m.mu.Unlock()

	sort.Slice(previews, func(i, j int) bool {
		return previews[i].OpenedAt.Before(previews[j].OpenedAt)
	})
	return previews
}

// Dismiss closes the preview and abandons any fetch still in flight.
func (m *Manager) Dismiss(id string) error {
	m.mu.Lock()
	e, ok := m.previews[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	e.dismissed = true
	delete(m.previews, id)
	m.mu.Unlock()

	e.cancel()
	return nil
}

// DismissSession closes every preview opened by the session.
func (m *Manager) DismissSession(sessionId string) int {
	m.mu.Lock()
	var dismissed []*entry
	for id, e := range m.previews {
		if e.preview.SessionId == sessionId {
			e.dismissed = true
			delete(m.previews, id)
			dismissed = append(dismissed, e)
		}
	}
	m.mu.Unlock()

	for _, e := range dismissed {
		e.cancel()
	}
	return len(dismissed)
}

// Sweep evicts ready previews idle for longer than the idle TTL and returns
// how many were removed. Loading previews are bounded by the resolution timeout.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.previews {
		if e.preview.Status == StatusReady && now.Sub(e.lastSeen) >= m.idleTTL {
			e.dismissed = true
			e.cancel()
			delete(m.previews, id)
			evicted++
		}
	}
	return evicted
}

// Close dismisses all previews and waits for their resolutions to return.
func (m *Manager) Close() {
	m.mu.Lock()
	for id, e := range m.previews {
		e.dismissed = true
		e.cancel()
		delete(m.previews, id)
	}
	m.mu.Unlock()

	m.wg.Wait()
}

// Wait blocks until every background resolution has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}
