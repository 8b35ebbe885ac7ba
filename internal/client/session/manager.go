package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/validation"
	"github.com/dmitrijs2005/campushub/internal/logging"
)

// UserKey is the store key holding the serialized models.User.
const UserKey = "user"

// Store is the part of the durable key-value store used by the manager.
// Get must return (nil, nil) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Manager is the single owner and writer of the session. It is safe for
// concurrent use.
type Manager struct {
	store Store
	log   logging.Logger
	newID func() string

	// sem is a one-slot queue serializing mutations.
	sem     chan struct{}
	started atomic.Bool
	ready   chan struct{}

	mu     sync.RWMutex
	status Status
	user   *models.User
	busy   bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for transitions and store failures.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithIDGenerator overrides how operation ids for log correlation are made.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewManager returns a manager in StatusLoading. Initialize must be called
// before any other mutation.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	m := &Manager{
		store:  store,
		log:    logging.NewNopLogger(),
		newID:  uuid.NewString,
		sem:    make(chan struct{}, 1),
		ready:  make(chan struct{}),
		status: StatusLoading,
		subs:   make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Ready is closed once Initialize has finished.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// WaitReady blocks until Initialize has finished or ctx is done.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	s := Snapshot{Status: m.status, Busy: m.busy}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// Subscribe registers fn to be called with the new snapshot after every
// status or user change. fn runs on the goroutine performing the mutation
// and must not call mutating methods of the manager.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// Initialize restores the session from the store. A missing, unreadable or
// corrupt record leaves the session anonymous; such failures are logged and
// never returned. Only the first call does any work.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	if m.started.Load() {
		return ErrAlreadyInitialized
	}
	m.started.Store(true)
	defer close(m.ready)

	user, err := m.load(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to restore session, continuing anonymous", "error", err)
	}

	if user == nil {
		m.setState(StatusAnonymous, nil)
		m.log.Info(ctx, "no stored session")
		return nil
	}

	m.setState(StatusAuthenticated, user)
	m.log.Info(ctx, "session restored", "user_id", user.UserID)
	return nil
}

func (m *Manager) load(ctx context.Context) (*models.User, error) {
	raw, err := m.store.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	if raw == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrStorageRead, err)
	}
	if err := validateIdentity(u); err != nil {
		return nil, fmt.Errorf("%w: stored record: %w", ErrStorageRead, err)
	}
	return &u, nil
}

// Login signs the user in. The password is accepted for the shape of the
// contract only: it is neither checked nor kept.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) error {
	user := models.User{
		UserID:      creds.UserID,
		CollegeName: creds.CollegeName,
		CollegeCode: creds.CollegeCode,
	}
	return m.commit(ctx, "login", user)
}

// Signup stores the new account and signs it in. The password is dropped.
func (m *Manager) Signup(ctx context.Context, req models.SignupRequest) error {
	return m.commit(ctx, "signup", req.User)
}

func (m *Manager) commit(ctx context.Context, op string, user models.User) error {
	if err := validateIdentity(user); err != nil {
		return err
	}

	return m.mutate(ctx, op, func(ctx context.Context, log logging.Logger) error {
		if err := m.persist(ctx, user); err != nil {
			log.Error(ctx, "failed to store session", "error", err)
			return err
		}

		m.setState(StatusAuthenticated, &user)
		log.Info(ctx, "signed in", "user_id", user.UserID)
		return nil
	})
}

// Logout deletes the stored record and clears the session. The in-memory
// session is cleared even when the delete fails.
func (m *Manager) Logout(ctx context.Context) error {
	return m.mutate(ctx, "logout", func(ctx context.Context, log logging.Logger) error {
		err := m.store.Delete(ctx, UserKey)
		m.setState(StatusAnonymous, nil)

		if err != nil {
			log.Error(ctx, "signed out, but stored session could not be removed", "error", err)
			return fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
		log.Info(ctx, "signed out")
		return nil
	})
}

// UpdateProfile merges upd into the current user and stores the result.
func (m *Manager) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	return m.mutate(ctx, "update_profile", func(ctx context.Context, log logging.Logger) error {
		m.mu.RLock()
		status, current := m.status, m.user
		m.mu.RUnlock()

		if status != StatusAuthenticated || current == nil {
			return ErrNotAuthenticated
		}

		merged := upd.Apply(*current)
		if err := m.persist(ctx, merged); err != nil {
			log.Error(ctx, "failed to store profile", "error", err)
			return err
		}

		m.setState(StatusAuthenticated, &merged)
		log.Info(ctx, "profile updated", "user_id", merged.UserID)
		return nil
	})
}

// mutate runs fn as the only in-flight mutation, with the busy flag raised.
func (m *Manager) mutate(ctx context.Context, op string, fn func(context.Context, logging.Logger) error) error {
	if !m.started.Load() {
		return ErrNotInitialized
	}
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	m.setBusy(true)
	defer m.setBusy(false)

	log := m.log.With("op", op, "op_id", m.newID())
	return fn(ctx, log)
}

func (m *Manager) persist(ctx context.Context, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorageWrite, err)
	}
	if err := m.store.Set(ctx, UserKey, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

func (m *Manager) acquire(ctx context.Context) error {
	select {
	case m.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release() {
	<-m.sem
}

func (m *Manager) setBusy(busy bool) {
	m.mu.Lock()
	m.busy = busy
	m.mu.Unlock()
}

func (m *Manager) setState(status Status, user *models.User) {
	m.mu.Lock()
	m.status = status
	m.user = nil
	if user != nil {
		u := *user
		m.user = &u
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
}

func (m *Manager) notify(snap Snapshot) {
	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func validateIdentity(u models.User) error {
	fe := validation.FieldErrors{}
	if r := validation.Check(u.UserID, validation.Required(validation.MsgUserIDRequired)); !r.OK {
		fe["userId"] = r.Message
	}
	if r := validation.Check(u.CollegeName, validation.Required(validation.MsgCollegeNameRequired)); !r.OK {
		fe["collegeName"] = r.Message
	}
	if r := validation.Check(u.CollegeCode, validation.Required(validation.MsgCollegeCodeRequired)); !r.OK {
		fe["collegeCode"] = r.Message
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}
