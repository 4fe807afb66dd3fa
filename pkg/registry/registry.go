// Package registry binds type identities to object pools. It is the entry
// point callers use to obtain pooled instances without holding a direct
// reference to the pool: register a type's factory once at startup, then
// acquire instances by type from anywhere.
//
// A Registry is populated by explicit registration calls during composition
// and read thereafter; entries are never removed. Each composition root (and
// each test) can construct its own Registry, and a package-level Default is
// provided for the plain process-wide case.
//
// Like the pools it manages, a Registry is not synchronized and serves a
// single logical thread of control.
package registry

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/ajitpratap0/repool/pkg/logger"
	"github.com/ajitpratap0/repool/pkg/pool"
	"github.com/ajitpratap0/repool/pkg/repoolerrors"
)

// Registry maps a type identity to the single pool responsible for that
// type. At most one pool exists per type; registering a type again silently
// replaces the prior pool. Instances produced by a replaced pool keep their
// back-reference to it and still release into it.
type Registry struct {
	pools  map[reflect.Type]any
	logger *zap.Logger
	inst   pool.Instrument
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger sets the registry's logger, which is also handed to pools the
// registry creates.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = log
	}
}

// WithInstrument attaches an activity observer to every pool the registry
// creates.
func WithInstrument(inst pool.Instrument) Option {
	return func(r *Registry) {
		r.inst = inst
	}
}

// Default is the process-wide registry used by the package-level Register
// and CreateInstance functions.
var Default = New()

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		pools:  make(map[reflect.Type]any),
		logger: logger.Get().With(zap.String("component", "pool_registry")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register constructs a pool for T wrapping the given creator and stores it
// under T's type identity, overwriting any prior entry for T. It always
// succeeds; a nil creator panics with a configuration error (see pool.New).
func Register[T pool.Poolable](r *Registry, creator func() T) {
	key := keyOf[T]()

	opts := []pool.Option[T]{
		pool.WithName[T](key.String()),
		pool.WithLogger[T](r.logger),
	}
	if r.inst != nil {
		opts = append(opts, pool.WithInstrument[T](r.inst))
	}
	p := pool.New(creator, opts...)

	if _, replaced := r.pools[key]; replaced {
		r.logger.Info("pool replaced", zap.String("type", key.String()))
	} else {
		r.logger.Info("pool registered", zap.String("type", key.String()))
	}
	r.pools[key] = p
}

// CreateInstance looks up the pool registered for T and acquires an instance
// from it. It returns a configuration error when no pool has been registered
// for T: that is a programming-contract violation requiring a code fix, and
// no ad-hoc pool is created.
func CreateInstance[T pool.Poolable](r *Registry) (T, error) {
	key := keyOf[T]()

	stored, ok := r.pools[key]
	if !ok {
		var zero T
		return zero, repoolerrors.New(repoolerrors.ErrorTypeConfig,
			fmt.Sprintf("pool not initialized for type %s", key)).
			WithDetail("type", key.String())
	}
	return stored.(*pool.Pool[T]).Acquire(), nil
}

// PoolOf returns the typed pool handle registered for T, for diagnostics and
// tests. Holding the handle avoids the type lookup on hot paths.
func PoolOf[T pool.Poolable](r *Registry) (*pool.Pool[T], bool) {
	stored, ok := r.pools[keyOf[T]()]
	if !ok {
		return nil, false
	}
	return stored.(*pool.Pool[T]), true
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.pools)
}

// RegisterDefault registers a creator for T in the Default registry.
func RegisterDefault[T pool.Poolable](creator func() T) {
	Register(Default, creator)
}

// CreateInstanceDefault acquires an instance of T from the Default registry.
func CreateInstanceDefault[T pool.Poolable]() (T, error) {
	return CreateInstance[T](Default)
}

// keyOf returns the type identity used as the registry key for T.
func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
