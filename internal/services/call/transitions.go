package call

import "aileana/internal/models"

// allowedTransitions is the complete transition table for a call
// session. Absence means the transition is illegal; ENDED and FAILED
// have no exits.
var allowedTransitions = map[models.CallStatus][]models.CallStatus{
	models.CallStatusInitiated: {models.CallStatusRinging, models.CallStatusFailed, models.CallStatusEnded},
	models.CallStatusRinging:   {models.CallStatusAccepted, models.CallStatusFailed, models.CallStatusEnded},
	models.CallStatusAccepted:  {models.CallStatusEnded, models.CallStatusFailed},
	models.CallStatusEnded:     {},
	models.CallStatusFailed:    {},
}

// CanTransition reports whether a session may move from one status to
// another.
func CanTransition(from, to models.CallStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
