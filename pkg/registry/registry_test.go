package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/repool/pkg/pool"
	"github.com/ajitpratap0/repool/pkg/registry"
	"github.com/ajitpratap0/repool/pkg/repoolerrors"
)

type widget struct {
	pool.Object

	value  int
	origin string
}

func (w *widget) Initialize() { w.value = 0 }
func (w *widget) Release()    {}

type gadget struct {
	pool.Object
}

func (g *gadget) Initialize() {}
func (g *gadget) Release()    {}

func newRegistry(t *testing.T, opts ...registry.Option) *registry.Registry {
	t.Helper()
	opts = append(opts, registry.WithLogger(zaptest.NewLogger(t)))
	return registry.New(opts...)
}

func TestCreateInstanceUnregisteredType(t *testing.T) {
	r := newRegistry(t)

	_, err := registry.CreateInstance[*widget](r)
	require.Error(t, err)
	assert.True(t, repoolerrors.IsType(err, repoolerrors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "pool not initialized")

	// Any unregistered type fails the same way, independently of others.
	registry.Register(r, func() *widget { return &widget{} })
	_, err = registry.CreateInstance[*gadget](r)
	require.Error(t, err)
	assert.True(t, repoolerrors.IsType(err, repoolerrors.ErrorTypeConfig))
}

func TestRegisterAndCreateInstance(t *testing.T) {
	r := newRegistry(t)
	registry.Register(r, func() *widget { return &widget{origin: "factory"} })

	w, err := registry.CreateInstance[*widget](r)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "factory", w.origin)
	assert.True(t, w.Pooled())
}

func TestReRegistrationReplacesFactory(t *testing.T) {
	r := newRegistry(t)

	registry.Register(r, func() *widget { return &widget{origin: "first"} })
	registry.Register(r, func() *widget { return &widget{origin: "second"} })
	assert.Equal(t, 1, r.Len(), "one pool per type identity")

	w, err := registry.CreateInstance[*widget](r)
	require.NoError(t, err)
	assert.Equal(t, "second", w.origin)
}

func TestReplacedPoolStillAcceptsItsInstances(t *testing.T) {
	r := newRegistry(t)

	registry.Register(r, func() *widget { return &widget{origin: "first"} })
	orphan, err := registry.CreateInstance[*widget](r)
	require.NoError(t, err)

	oldPool, ok := registry.PoolOf[*widget](r)
	require.True(t, ok)

	registry.Register(r, func() *widget { return &widget{origin: "second"} })

	// The orphan's back-reference is stable: it releases into the pool that
	// produced it, not the replacement.
	orphan.ReleaseToPool()
	assert.Equal(t, 1, oldPool.AvailableCount())

	newPool, ok := registry.PoolOf[*widget](r)
	require.True(t, ok)
	assert.Equal(t, 0, newPool.AvailableCount())
}

func TestPoolOf(t *testing.T) {
	r := newRegistry(t)

	_, ok := registry.PoolOf[*widget](r)
	assert.False(t, ok)

	registry.Register(r, func() *widget { return &widget{} })
	p, ok := registry.PoolOf[*widget](r)
	require.True(t, ok)
	assert.Equal(t, "*registry_test.widget", p.Name())
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1 := newRegistry(t)
	r2 := newRegistry(t)

	registry.Register(r1, func() *widget { return &widget{} })

	_, err := registry.CreateInstance[*widget](r2)
	require.Error(t, err)
}

func TestDefaultRegistry(t *testing.T) {
	registry.RegisterDefault(func() *gadget { return &gadget{} })

	g, err := registry.CreateInstanceDefault[*gadget]()
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.True(t, g.Pooled())
}

// TestEndToEndWidgetScenario walks the full acquire/mutate/self-release/reuse
// cycle through the registry.
func TestEndToEndWidgetScenario(t *testing.T) {
	r := newRegistry(t)
	registry.Register(r, func() *widget { return &widget{} })

	p, ok := registry.PoolOf[*widget](r)
	require.True(t, ok)

	w1, err := registry.CreateInstance[*widget](r)
	require.NoError(t, err)
	assert.Equal(t, 0, w1.value)
	assert.Equal(t, 0, p.AvailableCount())

	w1.value = 42
	w1.ReleaseToPool()
	assert.Equal(t, 1, p.AvailableCount())

	w2, err := registry.CreateInstance[*widget](r)
	require.NoError(t, err)
	assert.Same(t, w1, w2)
	assert.Equal(t, 0, p.AvailableCount())
	assert.Equal(t, 42, w2.value, "no auto-reset on acquire; the caller initializes explicitly")

	w2.Initialize()
	assert.Equal(t, 0, w2.value)
}
