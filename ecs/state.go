package ecs

import "reflect"

// stateTransitioner applies a pending state change at the end of a frame.
type stateTransitioner interface {
	applyTransition(storage *Storage)
}

// stateMachine holds the current value of a finite state S together with the
// queued next value and the hooks to run when entering or leaving a value.
type stateMachine[S comparable] struct {
	current S
	next    S
	pending bool
	onEnter map[S][]func(*Storage)
	onExit  map[S][]func(*Storage)
}

func (m *stateMachine[S]) applyTransition(storage *Storage) {
	// hooks may queue another transition; it is applied on the following frame
	if !m.pending {
		return
	}
	m.pending = false
	if m.next == m.current {
		return
	}

	from, to := m.current, m.next
	for _, hook := range m.onExit[from] {
		hook(storage)
	}
	m.current = to
	for _, hook := range m.onEnter[to] {
		hook(storage)
	}
}

func stateMachineFor[S comparable](s *Storage) *stateMachine[S] {
	entry := s.getSingletonEntry(reflect.TypeFor[stateMachine[S]]())
	if entry == nil {
		return nil
	}
	return (*stateMachine[S])(entry.dataPtr)
}

// State is a handle to the finite state S of a world.
// Systems declare State fields and the Scheduler initializes them on registration.
type State[S comparable] struct {
	machine *stateMachine[S]
}

// InitState installs state S with an initial value, running no hooks.
// Calling it again resets the value and drops any queued transition but keeps hooks.
func InitState[S comparable](storage *Storage, initial S) *State[S] {
	machine := stateMachineFor[S](storage)
	if machine == nil {
		storage.AddSingleton(&stateMachine[S]{
			onEnter: make(map[S][]func(*Storage)),
			onExit:  make(map[S][]func(*Storage)),
		})
		machine = stateMachineFor[S](storage)
		storage.states = append(storage.states, machine)
	}
	machine.current = initial
	machine.pending = false
	return &State[S]{machine: machine}
}

// Init binds the handle to the storage's state S. The state must have been
// installed with InitState first.
func (st *State[S]) Init(storage *Storage) {
	st.machine = stateMachineFor[S](storage)
	if st.machine == nil {
		var zero S
		panic("state " + reflect.TypeOf(zero).String() + " used before InitState")
	}
}

// Get returns the current state value.
func (st *State[S]) Get() S {
	return st.machine.current
}

// Set queues a transition that is applied at the end of the current frame.
// The last Set within a frame wins.
func (st *State[S]) Set(next S) {
	st.machine.next = next
	st.machine.pending = true
}

// Pending returns the queued value, if a transition is queued.
func (st *State[S]) Pending() (S, bool) {
	return st.machine.next, st.machine.pending
}

// OnEnter registers a hook that runs when the state becomes value.
func (st *State[S]) OnEnter(value S, hook func(*Storage)) {
	st.machine.onEnter[value] = append(st.machine.onEnter[value], hook)
}

// OnExit registers a hook that runs when the state leaves value.
func (st *State[S]) OnExit(value S, hook func(*Storage)) {
	st.machine.onExit[value] = append(st.machine.onExit[value], hook)
}

// Condition gates whether a registered system runs in a given frame.
type Condition func(storage *Storage) bool

// InState is a Condition that holds while state S equals value.
func InState[S comparable](value S) Condition {
	return func(storage *Storage) bool {
		machine := stateMachineFor[S](storage)
		return machine != nil && machine.current == value
	}
}
