// Package pool provides generic typed object pooling for repool.
// A Pool manufactures and recycles instances of a single type, reducing
// allocation churn and garbage collector pressure for transient objects
// in performance-sensitive code.
//
// The package provides:
//   - Generic type-safe object pooling with Pool[T]
//   - A Poolable contract and an embeddable Object base that lets an
//     acquired instance release itself back to its owning pool
//   - Pluggable instrumentation and logging
//   - Statistics for monitoring pool efficiency
//
// Pools and their free lists are not synchronized: a pool serves a single
// logical thread of control (a game loop tick, a request-handling routine).
// Wrap access in your own mutual exclusion before sharing one across
// goroutines.
//
// Example usage:
//
//	type Buffer struct {
//	    pool.Object
//	    data []byte
//	}
//
//	func (b *Buffer) Initialize() { b.data = b.data[:0] }
//	func (b *Buffer) Release()    { b.data = nil }
//
//	bufPool := pool.New(func() *Buffer { return &Buffer{} })
//	buf := bufPool.Acquire()
//	buf.Initialize()
//	// Use buf...
//	buf.ReleaseToPool()
package pool

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/ajitpratap0/repool/pkg/repoolerrors"
)

// Poolable is the contract for objects that participate in pooling.
// Implementations provide the two lifecycle hooks and must embed Object,
// which supplies the unexported binding methods and the back-reference to
// the owning pool.
type Poolable interface {
	// Initialize sets the object to a usable default state. The pool never
	// calls it: acquiring a slot and configuring its contents are separate
	// concerns, and a reused instance retains whatever Release left behind
	// until the caller initializes it.
	Initialize()

	// Release clears transient state before the object re-enters its pool.
	// It is invoked by ReleaseToPool, not by the pool itself.
	Release()

	bind(h home, self Poolable)
	markInUse(bool)
}

// home is the non-owning view of a pool held by the objects it produced.
// The object does not keep the pool alive; pool lifetime is owned by the
// registry or the composition root.
type home interface {
	put(obj Poolable)
	warn(msg string, fields ...zap.Field)

	// Name returns the pool's identifying name.
	Name() string
}

// Object is the embeddable base for pooled types. It carries the
// back-reference to the owning pool, set once when the instance is first
// manufactured and never reassigned: instances are not transferable
// between pools, and instances orphaned by re-registration still release
// into the pool that produced them.
type Object struct {
	home  home
	self  Poolable
	inUse bool
}

func (o *Object) bind(h home, self Poolable) {
	if o.home != nil {
		return
	}
	o.home = h
	o.self = self
}

func (o *Object) markInUse(v bool) {
	o.inUse = v
}

// Pooled reports whether the object was produced by a pool.
func (o *Object) Pooled() bool {
	return o.home != nil
}

// ReleaseToPool runs the object's Release hook and hands the object back to
// its owning pool, letting callers release without naming the pool. It is a
// no-op for objects that were never produced by a pool, and a logged no-op
// for objects already sitting in their pool's free list (double release).
func (o *Object) ReleaseToPool() {
	if o.home == nil {
		return
	}
	if !o.inUse {
		o.home.warn("ignoring release of object already in pool",
			zap.String("pool", o.home.Name()))
		return
	}
	o.self.Release()
	o.home.put(o.self)
}

// Instrument observes pool activity. Implementations plug observability
// backends into a pool without the pool importing them; see pkg/metrics for
// a Prometheus-backed implementation.
type Instrument interface {
	// ObserveAcquire records an acquisition. reused is true when the
	// instance came from the free list rather than the creator.
	ObserveAcquire(pool string, reused bool)

	// ObserveRelease records a release and the resulting free-list size.
	ObserveRelease(pool string, available int)
}

// Stats holds pool counters for monitoring and diagnostics.
type Stats struct {
	// Manufactured is the number of instances produced by the creator.
	Manufactured int64 `json:"manufactured"`
	// Reused is the number of acquisitions served from the free list.
	Reused int64 `json:"reused"`
	// Released is the number of instances returned to the free list.
	Released int64 `json:"released"`
	// Available is the current free-list size.
	Available int `json:"available"`
}

// Pool manufactures and recycles instances of a single type T. It owns a
// creator factory and a LIFO free list of previously released instances;
// the most recently released instance is reused first, favoring cache
// locality of the most recently touched object.
//
// A Pool is not safe for concurrent use.
type Pool[T Poolable] struct {
	poolName  string
	creator   func() T
	available []T // LIFO; top of stack is the most recently released
	log       *zap.Logger
	inst      Instrument

	manufactured int64
	reused       int64
	released     int64
}

// Option configures a Pool at construction time.
type Option[T Poolable] func(*Pool[T])

// WithName sets the pool's identifying name, used in logs and
// instrumentation labels. Defaults to the type name of T.
func WithName[T Poolable](name string) Option[T] {
	return func(p *Pool[T]) {
		p.poolName = name
	}
}

// WithLogger sets the pool's logger. Defaults to a no-op logger.
func WithLogger[T Poolable](log *zap.Logger) Option[T] {
	return func(p *Pool[T]) {
		p.log = log
	}
}

// WithInstrument attaches an activity observer to the pool.
func WithInstrument[T Poolable](inst Instrument) Option[T] {
	return func(p *Pool[T]) {
		p.inst = inst
	}
}

// New creates a pool wrapping the given creator. The creator must produce a
// new, fully-formed T each call; self-constructing pools are not supported,
// and New panics with a configuration error when creator is nil so the
// missing factory surfaces at registration time rather than on first use.
//
// Example:
//
//	bufPool := pool.New(
//	    func() *Buffer { return &Buffer{data: make([]byte, 0, 1024)} },
//	    pool.WithName[*Buffer]("buffer"),
//	)
func New[T Poolable](creator func() T, opts ...Option[T]) *Pool[T] {
	if creator == nil {
		panic(repoolerrors.New(repoolerrors.ErrorTypeConfig, "pool creator not provided").
			WithDetail("type", typeNameOf[T]()))
	}

	p := &Pool[T]{
		poolName: typeNameOf[T](),
		creator:  creator,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns an instance of T, reusing the most recently released one
// when the free list is non-empty and manufacturing a new one via the
// creator otherwise. Freshly manufactured instances are bound to this pool;
// the binding is permanent for the instance's lifetime.
//
// Acquire never calls Initialize on the returned instance. A reused instance
// retains whatever state Release left it in; configuring it is the caller's
// responsibility. Panics raised by the creator propagate unchanged.
func (p *Pool[T]) Acquire() T {
	if n := len(p.available); n > 0 {
		obj := p.available[n-1]
		var zero T
		p.available[n-1] = zero
		p.available = p.available[:n-1]

		obj.markInUse(true)
		p.reused++
		if p.inst != nil {
			p.inst.ObserveAcquire(p.poolName, true)
		}
		p.log.Debug("reused pooled instance",
			zap.String("pool", p.poolName),
			zap.Int("available", len(p.available)))
		return obj
	}

	obj := p.creator()
	obj.bind(p, obj)
	obj.markInUse(true)
	p.manufactured++
	if p.inst != nil {
		p.inst.ObserveAcquire(p.poolName, false)
	}
	p.log.Debug("manufactured new instance", zap.String("pool", p.poolName))
	return obj
}

// Release appends obj to the free list unconditionally. It does not verify
// that obj belongs to this pool or that it is not already in the free list;
// those are caller contracts, and violating them is undefined behavior.
// Prefer ReleaseToPool on the object, which also runs the Release hook and
// tolerates double release.
func (p *Pool[T]) Release(obj T) {
	obj.markInUse(false)
	p.available = append(p.available, obj)
	p.released++
	if p.inst != nil {
		p.inst.ObserveRelease(p.poolName, len(p.available))
	}
}

// AvailableCount returns the current free-list size. Purely observational.
func (p *Pool[T]) AvailableCount() int {
	return len(p.available)
}

// Name returns the pool's identifying name.
func (p *Pool[T]) Name() string {
	return p.poolName
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Manufactured: p.manufactured,
		Reused:       p.reused,
		Released:     p.released,
		Available:    len(p.available),
	}
}

// put implements home for objects releasing themselves via ReleaseToPool.
func (p *Pool[T]) put(obj Poolable) {
	p.Release(obj.(T))
}

func (p *Pool[T]) warn(msg string, fields ...zap.Field) {
	p.log.Warn(msg, fields...)
}

// typeNameOf returns the string form of T's type identity, e.g.
// "*widget.Widget".
func typeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
