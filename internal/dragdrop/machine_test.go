package dragdrop_test

import (
	"testing"

	"timeTracker/internal/dragdrop"

	"github.com/stretchr/testify/assert"
)

func TestDrop_TaskWithinGroup(t *testing.T) {
	m := dragdrop.New()
	m.StartTask(0, 0)
	assert.Equal(t, dragdrop.StateDragging, m.State())

	res := m.Drop(dragdrop.Target{GroupIndex: 0, TaskIndex: 2})

	assert.Equal(t, dragdrop.OpReorderTask, res.Op)
	assert.Equal(t, 0, res.FromGroup)
	assert.Equal(t, 0, res.FromTask)
	assert.Equal(t, 2, res.ToTask)
	assert.Equal(t, dragdrop.StateIdle, m.State())
}

func TestDrop_TaskAcrossGroups(t *testing.T) {
	m := dragdrop.New()
	m.StartTask(0, 1)

	res := m.Drop(dragdrop.Target{GroupIndex: 2, TaskIndex: 0})

	assert.Equal(t, dragdrop.OpMoveTask, res.Op)
	assert.Equal(t, 0, res.FromGroup)
	assert.Equal(t, 1, res.FromTask)
	assert.Equal(t, 2, res.ToGroup)
}

func TestDrop_TaskOntoItself(t *testing.T) {
	m := dragdrop.New()
	m.StartTask(1, 1)

	res := m.Drop(dragdrop.Target{GroupIndex: 1, TaskIndex: 1})

	assert.Equal(t, dragdrop.OpNone, res.Op)
	assert.Equal(t, dragdrop.StateIdle, m.State())
}

func TestDrop_Group(t *testing.T) {
	m := dragdrop.New()
	m.StartGroup(0)

	res := m.Drop(dragdrop.Target{GroupIndex: 2})

	assert.Equal(t, dragdrop.OpReorderGroups, res.Op)
	assert.Equal(t, 0, res.FromGroup)
	assert.Equal(t, 2, res.ToGroup)
}

func TestDrop_GroupOntoItself(t *testing.T) {
	m := dragdrop.New()
	m.StartGroup(1)

	res := m.Drop(dragdrop.Target{GroupIndex: 1})

	assert.Equal(t, dragdrop.OpNone, res.Op)
}

func TestDrop_WithoutGesture(t *testing.T) {
	m := dragdrop.New()

	res := m.Drop(dragdrop.Target{GroupIndex: 1, TaskIndex: 0})

	assert.Equal(t, dragdrop.OpNone, res.Op)
	assert.Equal(t, dragdrop.StateIdle, m.State())
}

func TestCancel_DiscardsGesture(t *testing.T) {
	m := dragdrop.New()
	m.StartTask(0, 0)

	m.Cancel()
	assert.Equal(t, dragdrop.StateIdle, m.State())

	res := m.Drop(dragdrop.Target{GroupIndex: 1, TaskIndex: 0})
	assert.Equal(t, dragdrop.OpNone, res.Op)
}

// A second start replaces the gesture in flight.
func TestStart_ReplacesInFlightGesture(t *testing.T) {
	m := dragdrop.New()
	m.StartTask(0, 0)
	m.StartGroup(1)

	res := m.Drop(dragdrop.Target{GroupIndex: 2})

	assert.Equal(t, dragdrop.OpReorderGroups, res.Op)
	assert.Equal(t, 1, res.FromGroup)
}

// The machine is single-shot per gesture: after a drop it needs a new
// start before resolving anything again.
func TestDrop_ConsumesGesture(t *testing.T) {
	m := dragdrop.New()
	m.StartTask(0, 0)
	_ = m.Drop(dragdrop.Target{GroupIndex: 1, TaskIndex: 0})

	res := m.Drop(dragdrop.Target{GroupIndex: 1, TaskIndex: 0})
	assert.Equal(t, dragdrop.OpNone, res.Op)
}
