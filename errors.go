package ringmap

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrContractViolation marks every panic raised by the map when a caller
	// breaks an API precondition: dereferencing End, erasing with a stale
	// or foreign iterator, or a hash function returning an out-of-range index.
	ErrContractViolation = errors.New("ringmap: contract violation")

	// ErrMapFull is returned by TryInsert when the map already holds the
	// number of entries configured by WithMaxSize.
	ErrMapFull = errors.New("ringmap: map is full")
)

// IsContractViolation reports whether a value recovered from a panic was
// raised by a broken map precondition.
func IsContractViolation(recovered any) bool {
	err, ok := recovered.(error)
	return ok && errors.Is(err, ErrContractViolation)
}

func contractViolation(format string, args ...any) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrContractViolation)
}

// violate logs and panics; it never returns.
func (m *Map[K, V]) violate(format string, args ...any) {
	err := contractViolation(format, args...)
	if m.logger != nil {
		m.logger.Error("contract violation", "error", err)
	}
	panic(err)
}

// checkInit rejects the zero Map, which has neither a hasher nor the
// sentinel slot.
func (m *Map[K, V]) checkInit() {
	if m.hasher == nil {
		panic(contractViolation("ringmap: use of an uninitialized Map, create it with New"))
	}
}
