package ecs

import "errors"

// Sentinel errors for the Engine's System and Entity registries
// (spec.md §6, §7).
var (
	ErrSystemKindAlreadyRegistered = errors.New("ecs: a system of this concrete type is already registered")
	ErrSystemNotRegistered         = errors.New("ecs: system is not registered with this engine")
	ErrEntityAlreadyAdded          = errors.New("ecs: entity is already added to an engine")
)
