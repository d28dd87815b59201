package decision

import (
	"errors"
	"fmt"
)

// ErrSimulationInconsistency signals an internal invariant violation:
// the simulator produced something other than the three expected actions.
// It should never fire in normal operation and is surfaced as a server
// error, not silently degraded.
var ErrSimulationInconsistency = errors.New("simulator produced an incomplete action set")

// ValidationError rejects a situation field that is outside its documented
// bounds. Raised before any model is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
