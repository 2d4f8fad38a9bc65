package intake

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultSessionTTL      = 30 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// Store keeps live sessions in memory. Sessions idle longer than the TTL are
// evicted and closed, which discards any pending acknowledgment.
type Store struct {
	cache  *cache.Cache
	opts   []Option
	logger *zap.Logger
}

type StoreConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	Logger          *zap.Logger
}

// NewStore creates a store. opts are applied to every session it creates.
func NewStore(cfg StoreConfig, opts ...Option) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	st := &Store{
		cache:  cache.New(cfg.TTL, cfg.CleanupInterval),
		opts:   opts,
		logger: cfg.Logger,
	}
	st.cache.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Close()
		}
		st.logger.Debug("session evicted", zap.String("session", id))
	})
	return st
}

func (st *Store) Create(extra ...Option) *Session {
	opts := make([]Option, 0, len(st.opts)+len(extra))
	opts = append(opts, st.opts...)
	opts = append(opts, extra...)
	s := NewSession(opts...)
	st.cache.Set(s.ID(), s, cache.DefaultExpiration)
	st.logger.Info("session created", zap.String("session", s.ID()))
	return s
}

// Get returns a live session and extends its lifetime.
func (st *Store) Get(id string) (*Session, error) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s := v.(*Session)
	// Replace fails when the janitor evicted the entry after Get.
	if err := st.cache.Replace(id, s, cache.DefaultExpiration); err != nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes and closes a session. Unknown ids are ignored.
func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

func (st *Store) Count() int {
	return st.cache.ItemCount()
}

// Close closes every live session.
func (st *Store) Close() {
	for id := range st.cache.Items() {
		st.cache.Delete(id)
	}
}

// FromContext resolves the session named by WithSessionID.
func (st *Store) FromContext(ctx context.Context) (*Session, error) {
	id, ok := SessionIDFromContext(ctx)
	if !ok || id == "" {
		return nil, ErrSessionNotFound
	}
	return st.Get(id)
}

type sessionKeyContext struct{}

// WithSessionID routes tool calls made with ctx to the given session.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, id)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(sessionKeyContext{})
	if value == nil {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
