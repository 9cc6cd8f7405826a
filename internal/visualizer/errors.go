package visualizer

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks programming errors: mismatched pool input or a
// selection for a proxy this visualizer never spawned.
var ErrContractViolation = errors.New("visualizer contract violation")

// ErrUnknownProxy is returned when a selection names a nil, foreign or
// destroyed proxy.
var ErrUnknownProxy = fmt.Errorf("unknown proxy: %w", ErrContractViolation)

func contractf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrContractViolation}, args...)...)
}
