// Package message provides a pooled message buffer, the reference Poolable
// implementation shipped with repool. Messages carry a payload and
// string headers and are designed to be recycled through a pool rather than
// allocated per use.
//
// Example usage:
//
//	registry.Register(reg, message.NewFactory(1024))
//
//	msg, err := registry.CreateInstance[*message.Message](reg)
//	if err != nil {
//	    return err
//	}
//	msg.Initialize()
//	msg.Payload = append(msg.Payload, data...)
//	msg.SetHeader("content-type", "application/json")
//	// ...
//	msg.ReleaseToPool()
package message

import (
	"strconv"

	"github.com/ajitpratap0/repool/pkg/pool"
)

// Message is a reusable message buffer. Obtain instances from a pool; a
// freshly acquired instance retains the state its previous user's Release
// left behind until Initialize is called.
type Message struct {
	pool.Object

	// ID is a unique identifier for the message
	ID string
	// Payload contains the message body
	Payload []byte
	// Headers contains message metadata
	Headers map[string]string
}

// idCounter feeds ID generation. Like the pools themselves, it assumes a
// single logical thread of control.
var idCounter uint64

// NewFactory returns a creator manufacturing messages with the given payload
// capacity, suitable for pool.New or registry.Register.
func NewFactory(payloadCap int) func() *Message {
	return func() *Message {
		return &Message{
			Payload: make([]byte, 0, payloadCap),
			Headers: make(map[string]string, 8),
		}
	}
}

// Initialize resets the message to a usable default: empty payload, empty
// headers, and a fresh ID. Callers invoke it after acquiring; pools never do.
func (m *Message) Initialize() {
	idCounter++
	m.ID = "msg-" + strconv.FormatUint(idCounter, 10)
	m.Payload = m.Payload[:0]
	if m.Headers == nil {
		m.Headers = make(map[string]string, 8)
	}
	for k := range m.Headers {
		delete(m.Headers, k)
	}
}

// Release clears transient state before the message returns to its pool.
// The payload's backing array is kept so reuse keeps its capacity.
func (m *Message) Release() {
	m.ID = ""
	m.Payload = m.Payload[:0]
	for k := range m.Headers {
		delete(m.Headers, k)
	}
}

// SetHeader sets a header value, initializing the header map if needed.
func (m *Message) SetHeader(key, value string) {
	if m.Headers == nil {
		m.Headers = make(map[string]string, 8)
	}
	m.Headers[key] = value
}

// Header retrieves a header value.
func (m *Message) Header(key string) (string, bool) {
	if m.Headers == nil {
		return "", false
	}
	val, ok := m.Headers[key]
	return val, ok
}
