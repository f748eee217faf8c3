package order

import "strings"

type Status string

const (
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaymentPending  Status = "payment_pending"
	StatusReserved        Status = "reserved"
	StatusPaid            Status = "paid"
	StatusInProgress      Status = "in_progress"
	StatusCompleted       Status = "completed"
	StatusExpired         Status = "expired"
	StatusCancelled       Status = "cancelled"
	StatusRefunded        Status = "refunded"
)

// AllStatuses lists every canonical status in lifecycle order.
var AllStatuses = []Status{
	StatusAwaitingPayment,
	StatusPaymentPending,
	StatusReserved,
	StatusPaid,
	StatusInProgress,
	StatusCompleted,
	StatusExpired,
	StatusCancelled,
	StatusRefunded,
}

// Old spellings still present in stored rows and older clients.
var legacyAliases = map[string]Status{
	"pending":   StatusAwaitingPayment,
	"confirmed": StatusReserved,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPaymentPending, StatusReserved, StatusPaid,
		StatusInProgress, StatusCompleted, StatusExpired, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// ParseStatus is the only place legacy names are translated to canonical statuses.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := legacyAliases[normalized]; ok {
		return alias, nil
	}
	s := Status(normalized)
	if !s.IsValid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// StoredSpellings returns every value a row in status s may carry in the status column.
func (s Status) StoredSpellings() []string {
	spellings := []string{s.String()}
	for legacy, canonical := range legacyAliases {
		if canonical == s {
			spellings = append(spellings, legacy)
		}
	}
	return spellings
}
