package ecs

import (
	"errors"
	"fmt"
)

// Precondition failures. Operations that violate them panic with an error
// wrapping one of these values, so a recover()'d value can be matched with
// errors.Is.
var (
	ErrInvalidEntity           = errors.New("invalid entity")
	ErrDuplicateComponent      = errors.New("component already attached")
	ErrMissingComponent        = errors.New("component not attached")
	ErrEntityPoolExhausted     = errors.New("entity pool exhausted")
	ErrTooManyComponentTypes   = errors.New("too many component types")
	ErrInvalidComponentType    = errors.New("invalid component type")
	ErrInvalidComponentId      = errors.New("component id out of range")
	ErrMutationDuringIteration = errors.New("structural change during iteration")
	ErrSceneClosed             = errors.New("scene closed")
)

// violation builds the panic value for a failed precondition.
func violation(sentinel error, format string, args ...any) error {
	return fmt.Errorf("ecs: %w: %s", sentinel, fmt.Sprintf(format, args...))
}

// AsViolation extracts the error carried by a recovered panic value.
// It returns nil when the value did not originate from a failed precondition.
func AsViolation(recovered any) error {
	err, ok := recovered.(error)
	if !ok {
		return nil
	}
	for _, sentinel := range []error{
		ErrInvalidEntity,
		ErrDuplicateComponent,
		ErrMissingComponent,
		ErrEntityPoolExhausted,
		ErrTooManyComponentTypes,
		ErrInvalidComponentType,
		ErrInvalidComponentId,
		ErrMutationDuringIteration,
		ErrSceneClosed,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return nil
}
