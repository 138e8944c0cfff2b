package assessment

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mindhaven/internal/apperr"
	"mindhaven/internal/bank"
	"mindhaven/internal/model"
	"mindhaven/internal/order"
	"mindhaven/internal/unlock"
)

// Manager owns the session registry and wires an unlock gate to each
// running session. Sessions live for the process lifetime.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry

	bank       *bank.QuestionBank
	orders     *order.Service
	visibility *unlock.Hub

	shareURL     string
	reportPrice  string
	advanceDelay time.Duration
	ackDelay     time.Duration
}

type entry struct {
	session *Session
	gate    *unlock.Gate
}

// Option tweaks manager timing, mainly for tests.
type Option func(*Manager)

// WithAdvanceDelay sets the pause between recording an answer and
// advancing to the next question.
func WithAdvanceDelay(d time.Duration) Option {
	return func(m *Manager) { m.advanceDelay = d }
}

// WithAckDelay sets the pause between a payment self-attestation and the
// unlock signal.
func WithAckDelay(d time.Duration) Option {
	return func(m *Manager) { m.ackDelay = d }
}

// NewManager creates the session manager.
func NewManager(b *bank.QuestionBank, orders *order.Service, visibility *unlock.Hub, shareURL, reportPrice string, opts ...Option) *Manager {
	m := &Manager{
		entries:      make(map[string]*entry),
		bank:         b,
		orders:       orders,
		visibility:   visibility,
		shareURL:     shareURL,
		reportPrice:  reportPrice,
		advanceDelay: 250 * time.Millisecond,
		ackDelay:     1500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create makes a new session, starts it in the given mode and arms its
// unlock gate.
func (m *Manager) Create(mode model.Mode, isMobile bool) (*Session, error) {
	sess := newSession(uuid.NewString(), m.bank, isMobile, m.advanceDelay)
	if err := sess.Start(mode); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[sess.ID()] = &entry{
		session: sess,
		gate:    m.newGate(sess),
	}
	m.mu.Unlock()

	return sess, nil
}

// Get returns a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, id)
	}
	return e.session, nil
}

// Gate returns a session's unlock gate.
func (m *Manager) Gate(id string) (*unlock.Gate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, id)
	}
	if e.gate == nil {
		return nil, apperr.Invalid("session has no active run")
	}
	return e.gate, nil
}

// Reset returns a session to mode selection and tears down its gate so
// no stale listener can fire for a later run.
func (m *Manager) Reset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("%w: session %s", apperr.ErrNotFound, id)
	}
	if e.gate != nil {
		e.gate.Teardown()
	}
	e.session.Reset()
	e.gate = nil
	return nil
}

// Restart starts a previously reset session in a (possibly different)
// mode and arms a fresh gate.
func (m *Manager) Restart(id string, mode model.Mode) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, id)
	}
	if err := e.session.Start(mode); err != nil {
		return nil, err
	}
	if e.gate != nil {
		e.gate.Teardown()
	}
	e.gate = m.newGate(e.session)
	return e.session, nil
}

func (m *Manager) newGate(sess *Session) *unlock.Gate {
	snap := sess.Snapshot()
	return unlock.NewGate(sess.ID(), snap.Mode, m.orders, m.visibility, m.shareURL, m.reportPrice, m.ackDelay, sess.Unlock)
}
