package testing

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	lastIndex := 0
	for _, exp := range expected {
		index := strings.Index(output[lastIndex:], exp)
		if index == -1 {
			return false
		}
		lastIndex += index + len(exp)
	}
	return true
}

// TimeController provides deterministic time for testing date defaults.
// Its Now method can be used as a session clock.
type TimeController struct {
	current time.Time
	mu      sync.Mutex
}

// NewTimeController creates a new time controller with a fixed starting time.
func NewTimeController(start time.Time) *TimeController {
	return &TimeController{current: start}
}

// Now returns the controlled time.
func (tc *TimeController) Now() time.Time {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.current
}

// Advance moves time forward.
func (tc *TimeController) Advance(d time.Duration) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.current = tc.current.Add(d)
}

// Set jumps to a specific time.
func (tc *TimeController) Set(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.current = t
}
