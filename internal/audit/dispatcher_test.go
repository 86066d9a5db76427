package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/habitta/internal/audit"
)

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	d := audit.NewDispatcher(sink)

	id := uint(7)
	d.Dispatch(audit.Event{Action: "client_created", Entity: "client", EntityID: &id})
	d.Dispatch(audit.Event{Action: "client_deleted", Entity: "client", EntityID: &id})
	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, "client_created", sink.events[0].Action)
	assert.Equal(t, "client_deleted", sink.events[1].Action)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := audit.NewDispatcher(sink)

	d.Dispatch(audit.Event{Action: "login"})
	d.Close()

	assert.Len(t, sink.events, 1)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *audit.Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "x"}) })
}
