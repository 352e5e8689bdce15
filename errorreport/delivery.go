package errorreport

type Outcome int

const (
	// OutcomeSkipped: reporting is off outside production.
	OutcomeSkipped Outcome = iota
	// OutcomeFiltered: the record ranked below the minimum severity.
	OutcomeFiltered
	OutcomeDelivered
	// OutcomeFallbackStored: delivery failed and the record was kept locally.
	OutcomeFallbackStored
	// OutcomeDropped: delivery failed and the record was not kept.
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeFallbackStored:
		return "fallback-stored"
	case OutcomeDropped:
		return "dropped"
	}
	return "unknown"
}

// Delivery is the best effort result of a report. Err holds the delivery or fallback
// failure, if any.
type Delivery struct {
	Outcome Outcome
	Err     error
}
