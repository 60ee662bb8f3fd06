package application

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// pending -> reviewing -> shortlisted -> hired; rejection from any open state.
var transitions = map[Status][]Status{
	StatusPending:     {StatusReviewing, StatusRejected},
	StatusReviewing:   {StatusShortlisted, StatusRejected, StatusHired},
	StatusShortlisted: {StatusHired, StatusRejected},
	StatusRejected:    nil,
	StatusHired:       nil,
}

// CanTransition reports whether an admin may move an application from -> to.
// Re-applying the current status is allowed so notes can be edited on their own.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
