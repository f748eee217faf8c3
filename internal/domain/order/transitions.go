package order

// allowedTransitions is the order lifecycle as data. Every status has an entry, even
// when the set is empty, so completeness is checkable by iterating AllStatuses.
var allowedTransitions = map[Status][]Status{
	StatusAwaitingPayment: {StatusPaymentPending, StatusPaid, StatusExpired, StatusCancelled},
	StatusPaymentPending:  {StatusPaid, StatusExpired, StatusCancelled},
	StatusPaid:            {StatusReserved, StatusInProgress, StatusRefunded, StatusCancelled},
	StatusReserved:        {StatusPaymentPending, StatusPaid, StatusInProgress, StatusCancelled, StatusRefunded},
	StatusInProgress:      {StatusCompleted, StatusCancelled, StatusRefunded},
	StatusCompleted:       {StatusRefunded},
	StatusExpired:         {StatusCancelled},
	StatusCancelled:       {StatusRefunded},
	StatusRefunded:        {},
}

var allowedTransitionSet = buildTransitionSet(allowedTransitions)

func buildTransitionSet(transitions map[Status][]Status) map[Status]map[Status]struct{} {
	set := make(map[Status]map[Status]struct{}, len(transitions))
	for from, tos := range transitions {
		next := make(map[Status]struct{}, len(tos))
		for _, to := range tos {
			next[to] = struct{}{}
		}
		set[from] = next
	}
	return set
}

func CanTransition(from, to Status) bool {
	next, ok := allowedTransitionSet[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// AllowedTargets returns a copy of the statuses reachable from s in one step.
// The second value is false when s is missing from the table.
func AllowedTargets(s Status) ([]Status, bool) {
	targets, ok := allowedTransitions[s]
	if !ok {
		return nil, false
	}
	out := make([]Status, len(targets))
	copy(out, targets)
	return out, true
}
