package ecs_test

import "github.com/plus3/match3/ecs"

// Common test component types, shaped after the board's own cell data
type Slot struct {
	Row, Col int
}

type Gem struct {
	Color string
}

type Drop struct {
	Offset float32
}

type Frozen struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Label string

type Chain struct {
	Links []int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Slot](registry)
	ecs.RegisterComponent[Gem](registry)
	ecs.RegisterComponent[Drop](registry)
	ecs.RegisterComponent[Frozen](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Chain](registry)
	return registry
}
