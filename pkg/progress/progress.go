// Package progress defines the optional progress-reporting capability
// long-running helpers accept. The library ships only the "not available"
// variant; hosts plug in their own terminal or UI reporter.
package progress

// Reporter receives coarse progress callbacks. Advance may be called from
// multiple goroutines; implementations must tolerate that.
type Reporter interface {
	Start(total int)
	Advance(n int)
	Done()
}

// Nop is the Reporter used when reporting is not available.
type Nop struct{}

func (Nop) Start(int)   {}
func (Nop) Advance(int) {}
func (Nop) Done()       {}

// SkipBelow is the input size at or under which ForSize suppresses
// reporting; progress output for a handful of items is noise.
const SkipBelow = 3

// ForSize returns r, or Nop when r is nil or total is too small to be worth
// reporting.
func ForSize(r Reporter, total int) Reporter {
	if r == nil || total <= SkipBelow {
		return Nop{}
	}
	return r
}
