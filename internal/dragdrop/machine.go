package dragdrop

// Machine tracks one in-progress drag gesture and resolves the drop
// into a concrete sheet operation. UI handlers stay thin adapters:
// they feed indexes in, get an operation out, and never touch the
// grouped collection themselves. A cancelled or invalid gesture
// resolves to nothing, so a half-finished drag can never corrupt
// state.

type State int

const (
	StateIdle State = iota
	StateDragging
)

type Kind int

const (
	KindGroup Kind = iota
	KindTask
)

// Source is what the gesture picked up: a whole group, or one task
// addressed by group and task index.
type Source struct {
	Kind       Kind
	GroupIndex int
	TaskIndex  int
}

// Target is where the gesture was released.
type Target struct {
	GroupIndex int
	TaskIndex  int
}

type Op int

const (
	OpNone Op = iota
	OpReorderGroups
	OpReorderTask
	OpMoveTask
)

// Resolution names the mutation a completed drop maps to. Index
// fields are only meaningful for the resolved op.
type Resolution struct {
	Op        Op
	FromGroup int
	FromTask  int
	ToGroup   int
	ToTask    int
}

type Machine struct {
	state  State
	source Source
}

func New() *Machine {
	return &Machine{state: StateIdle}
}

func (m *Machine) State() State {
	return m.state
}

// StartGroup begins a group-level drag. Starting a new gesture while
// one is in flight replaces it, matching how browsers fire dragstart.
func (m *Machine) StartGroup(groupIndex int) {
	m.state = StateDragging
	m.source = Source{Kind: KindGroup, GroupIndex: groupIndex}
}

// StartTask begins a task-level drag.
func (m *Machine) StartTask(groupIndex, taskIndex int) {
	m.state = StateDragging
	m.source = Source{Kind: KindTask, GroupIndex: groupIndex, TaskIndex: taskIndex}
}

// Drop resolves the gesture against the release target and returns to
// Idle. A drop with no gesture in flight, or onto the dragged item
// itself, resolves to OpNone.
func (m *Machine) Drop(target Target) Resolution {
	if m.state != StateDragging {
		return Resolution{Op: OpNone}
	}
	source := m.source
	m.reset()

	if source.Kind == KindGroup {
		if source.GroupIndex == target.GroupIndex {
			return Resolution{Op: OpNone}
		}
		return Resolution{
			Op:        OpReorderGroups,
			FromGroup: source.GroupIndex,
			ToGroup:   target.GroupIndex,
		}
	}

	if source.GroupIndex == target.GroupIndex {
		if source.TaskIndex == target.TaskIndex {
			return Resolution{Op: OpNone}
		}
		return Resolution{
			Op:        OpReorderTask,
			FromGroup: source.GroupIndex,
			FromTask:  source.TaskIndex,
			ToGroup:   target.GroupIndex,
			ToTask:    target.TaskIndex,
		}
	}

	return Resolution{
		Op:        OpMoveTask,
		FromGroup: source.GroupIndex,
		FromTask:  source.TaskIndex,
		ToGroup:   target.GroupIndex,
		ToTask:    target.TaskIndex,
	}
}

// Cancel abandons the gesture without resolving any operation, for
// drags released outside a valid target or interrupted mid-flight.
func (m *Machine) Cancel() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.source = Source{}
}
