package domain

import "fmt"

// AdvanceKind tells what happened to a high-water mark after a fetch cycle
type AdvanceKind string

const (
	// Advanced means the mark moved forward to a persisted item timestamp
	Advanced AdvanceKind = "advanced"
	// Held means the mark stayed where it was
	Held AdvanceKind = "held"
	// ForcedToNow means the mark was moved to the current time without persisted items
	ForcedToNow AdvanceKind = "forced_to_now"
)

// AdvanceOutcome is the result of a tracker update
type AdvanceOutcome struct {
	Kind   AdvanceKind
	From   int64
	To     int64
	Reason string
}

func (o AdvanceOutcome) String() string {
	switch o.Kind {
	case Advanced:
		return fmt.Sprintf("advanced %d -> %d", o.From, o.To)
	case ForcedToNow:
		return fmt.Sprintf("forced to now %d -> %d (%s)", o.From, o.To, o.Reason)
	default:
		return fmt.Sprintf("held at %d (%s)", o.From, o.Reason)
	}
}
