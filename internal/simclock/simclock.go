// Package simclock provides the monotonic tick counter shared by the
// Universe loop and the observation layer.
package simclock

import "fmt"

// Tick is the atomic unit of simulated time — one Universe.Step() call.
type Tick uint64

// String renders a tick for logging.
func (t Tick) String() string {
	return fmt.Sprintf("tick#%d", uint64(t))
}
