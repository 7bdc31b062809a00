// Package simerr defines the structured, non-fatal action error kinds the
// tick pipeline produces (spec §7 "Error handling design"). These never
// abort a tick; resolvers downgrade to Idle or record them on an event.
package simerr

import "fmt"

// Kind tags the category of a per-action error.
type Kind uint8

const (
	KindInsufficientEnergy Kind = iota
	KindInvalidTarget
	KindCapacityExceeded
	KindPathBlocked
	KindNoiseFailure
)

// String names a Kind.
func (k Kind) String() string {
	switch k {
	case KindInsufficientEnergy:
		return "insufficient_energy"
	case KindInvalidTarget:
		return "invalid_target"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindPathBlocked:
		return "path_blocked"
	case KindNoiseFailure:
		return "noise_failure"
	default:
		return "unknown"
	}
}

// ActionError is a structured per-action failure. It implements error so it
// composes with normal Go error handling, but the pipeline only ever
// inspects Kind — never string-matches Error().
type ActionError struct {
	Kind      Kind
	Reason    string
	Required  float64 // InsufficientEnergy
	Available float64 // InsufficientEnergy
	Limit     float64 // CapacityExceeded
}

func (e *ActionError) Error() string {
	switch e.Kind {
	case KindInsufficientEnergy:
		return fmt.Sprintf("insufficient energy: need %.2f, have %.2f", e.Required, e.Available)
	case KindCapacityExceeded:
		return fmt.Sprintf("capacity exceeded: limit %.2f", e.Limit)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
}

// InsufficientEnergy constructs the matching ActionError.
func InsufficientEnergy(required, available float64) *ActionError {
	return &ActionError{Kind: KindInsufficientEnergy, Required: required, Available: available}
}

// InvalidTarget constructs the matching ActionError.
func InvalidTarget(reason string) *ActionError {
	return &ActionError{Kind: KindInvalidTarget, Reason: reason}
}

// CapacityExceeded constructs the matching ActionError.
func CapacityExceeded(limit float64) *ActionError {
	return &ActionError{Kind: KindCapacityExceeded, Limit: limit}
}

// PathBlocked constructs the matching ActionError.
func PathBlocked(reason string) *ActionError {
	return &ActionError{Kind: KindPathBlocked, Reason: reason}
}

// NoiseFailure constructs the matching ActionError, recorded on the
// interaction event rather than surfaced as a user-visible failure.
func NoiseFailure(original string) *ActionError {
	return &ActionError{Kind: KindNoiseFailure, Reason: original}
}
