package operations

// Outcome reports what a board operation did. Only OutcomeApplied means the
// returned snapshot differs from the input.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeUnchanged
	OutcomeCancelled
	OutcomeColumnNotFound
	OutcomeCardNotFound
	OutcomeStaleIndex
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeColumnNotFound:
		return "column not found"
	case OutcomeCardNotFound:
		return "card not found"
	case OutcomeStaleIndex:
		return "stale index"
	case OutcomeInvalid:
		return "invalid value"
	}
	return "unknown"
}

// Applied returns true if the operation changed the board
func (o Outcome) Applied() bool {
	return o == OutcomeApplied
}

// NotFound returns true for the referential lookup failures
func (o Outcome) NotFound() bool {
	return o == OutcomeColumnNotFound || o == OutcomeCardNotFound || o == OutcomeStaleIndex
}
