package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/repool/pkg/message"
	"github.com/ajitpratap0/repool/pkg/pool"
	"github.com/ajitpratap0/repool/pkg/registry"
)

func TestFactoryPreallocatesPayload(t *testing.T) {
	m := message.NewFactory(512)()

	assert.Equal(t, 0, len(m.Payload))
	assert.Equal(t, 512, cap(m.Payload))
	assert.NotNil(t, m.Headers)
	assert.False(t, m.Pooled())
}

func TestInitializeResetsState(t *testing.T) {
	m := message.NewFactory(64)()
	m.Payload = append(m.Payload, "stale"...)
	m.SetHeader("origin", "previous-user")

	m.Initialize()

	assert.NotEmpty(t, m.ID)
	assert.Empty(t, m.Payload)
	assert.Empty(t, m.Headers)

	firstID := m.ID
	m.Initialize()
	assert.NotEqual(t, firstID, m.ID, "each initialize assigns a fresh ID")
}

func TestReleaseKeepsPayloadCapacity(t *testing.T) {
	m := message.NewFactory(256)()
	m.Initialize()
	m.Payload = append(m.Payload, make([]byte, 200)...)
	m.SetHeader("content-type", "application/json")

	m.Release()

	assert.Empty(t, m.ID)
	assert.Empty(t, m.Payload)
	assert.GreaterOrEqual(t, cap(m.Payload), 256)
	assert.Empty(t, m.Headers)
}

func TestHeaderAccess(t *testing.T) {
	m := &message.Message{}

	_, ok := m.Header("missing")
	assert.False(t, ok)

	m.SetHeader("content-type", "application/json")
	v, ok := m.Header("content-type")
	require.True(t, ok)
	assert.Equal(t, "application/json", v)
}

func TestMessageRecyclesThroughPool(t *testing.T) {
	p := pool.New(message.NewFactory(128))

	m := p.Acquire()
	m.Initialize()
	m.Payload = append(m.Payload, "payload"...)
	m.SetHeader("origin", "test")
	m.ReleaseToPool()

	m2 := p.Acquire()
	require.Same(t, m, m2)
	assert.Empty(t, m2.Payload, "Release hook ran during self-release")
	assert.Empty(t, m2.Headers)
}

func TestMessageThroughRegistry(t *testing.T) {
	r := registry.New()
	registry.Register(r, message.NewFactory(128))

	m, err := registry.CreateInstance[*message.Message](r)
	require.NoError(t, err)
	assert.True(t, m.Pooled())
}
