// Package repool provides a generic object pooling facility: per-type
// repositories of reusable instances with acquire/release semantics, plus a
// registry mapping a type identity to its pool and factory.
//
// Reusing previously allocated objects instead of repeatedly allocating and
// discarding them reduces allocation overhead and garbage collector pressure
// in performance-sensitive code: transient entities, message buffers,
// short-lived value objects.
//
// # Architecture
//
// Two collaborating components:
//
// 1. Registry: binds a type identity to exactly one pool. Populated once at
// startup via explicit registration calls, read thereafter. Callers obtain
// instances by type without threading a pool reference through call chains.
//
// 2. Pool: owns a factory and a LIFO free list of previously released
// instances. Acquire reuses the most recently released instance or
// manufactures a new one; Release stores an instance for future reuse.
//
// Pooled objects carry a back-reference to the pool that produced them, so a
// caller can release an instance with one method call regardless of
// provenance.
//
// # Quick Start
//
//	import (
//	    "github.com/ajitpratap0/repool/pkg/message"
//	    "github.com/ajitpratap0/repool/pkg/registry"
//	)
//
//	// Register once at startup
//	reg := registry.New()
//	registry.Register(reg, message.NewFactory(1024))
//
//	// Acquire per use-site
//	msg, err := registry.CreateInstance[*message.Message](reg)
//	if err != nil {
//	    return err
//	}
//	msg.Initialize()
//	msg.Payload = append(msg.Payload, data...)
//
//	// Release through the object's own back-reference
//	msg.ReleaseToPool()
//
// # Key Packages
//
//	pkg/pool         - Generic typed pools and the Poolable contract
//	pkg/registry     - Type identity to pool binding
//	pkg/message      - Reference pooled message buffer type
//	pkg/repoolerrors - Structured error handling
//	pkg/logger       - Structured logging
//	pkg/metrics      - Prometheus pool instrumentation
//	pkg/config       - Bench configuration loading
//
// # Concurrency
//
// Pools and registries are not synchronized: each serves a single logical
// thread of control, such as a game loop tick or a request-handling routine.
// Guard them with your own mutual exclusion before sharing across
// goroutines.
//
// # Caller Contracts
//
// The pool does not track in-use instances. Do not retain a reference to an
// instance after releasing it, do not release the same instance twice
// through Pool.Release, and do not release an instance into a pool that did
// not produce it. ReleaseToPool tolerates double self-release by ignoring
// it.
//
// # Development
//
// Get started with development:
//
//	git clone https://github.com/ajitpratap0/repool.git
//	cd repool
//	go test ./...
//	go run ./cmd/repool bench -n 100000
package repool
