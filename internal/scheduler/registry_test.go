package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubHandle struct {
	stopped int
}

func (h *stubHandle) Stop() { h.stopped++ }

func TestRegistryRegisterAndCancel(t *testing.T) {
	r := NewRegistry()
	h := &stubHandle{}

	r.Register("a", h)
	assert.True(t, r.Has("a"))
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Cancel("a"))
	assert.Equal(t, 1, h.stopped)
	assert.False(t, r.Has("a"))
	assert.Equal(t, 0, r.Len())

	assert.False(t, r.Cancel("a"), "cancelling an unknown id reports false")
}

func TestRegistryRegisterReplacesAndStopsOldHandle(t *testing.T) {
	r := NewRegistry()
	oldHandle := &stubHandle{}
	newHandle := &stubHandle{}

	r.Register("a", oldHandle)
	r.Register("a", newHandle)

	assert.Equal(t, 1, oldHandle.stopped, "replaced handle must be stopped")
	assert.Equal(t, 0, newHandle.stopped)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryTracksIdsIndependently(t *testing.T) {
	r := NewRegistry()
	r.Register("a", &stubHandle{})
	r.Register("b", &stubHandle{})

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Cancel("a"))
	assert.True(t, r.Has("b"))
}
