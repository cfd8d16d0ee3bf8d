package checks

import (
	"sort"
	"sync"

	"github.com/ningg/checkstyle/pkg/javast"
)

// Violation is one reported style problem. It is a value created at the
// detection site and handed to the reporter immediately; nothing mutates it
// afterwards.
type Violation struct {
	// Pos is the source position the violation points at.
	Pos javast.Position
	// Key identifies the message template in the bundle.
	Key string
	// Args fill the message template.
	Args []any
	// Check is the reporting check's name, stamped by the walker.
	Check string
}

// Message resolves the violation's key and args against the message bundle.
func (v Violation) Message() string {
	return MessageText(v.Key, v.Args...)
}

// Reporter is the violation sink handed to checks. Implementations provide
// their own synchronization; checks call Report from whatever goroutine
// visits the node.
type Reporter interface {
	Report(v Violation)
}

// Collector is an append-only Reporter guarded by a mutex.
type Collector struct {
	mu         sync.Mutex
	violations []Violation
}

// Report appends the violation.
func (c *Collector) Report(v Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.violations = append(c.violations, v)
}

// Violations returns a copy of the collected violations ordered by position,
// then by message key.
func (c *Collector) Violations() []Violation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Violation, len(c.violations))
	copy(out, c.violations)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos != out[j].Pos {
			return out[i].Pos.Less(out[j].Pos)
		}

		return out[i].Key < out[j].Key
	})

	return out
}

// Len returns the number of collected violations.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.violations)
}
