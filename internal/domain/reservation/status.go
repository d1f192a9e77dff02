package reservation

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// LiveStatuses are the statuses that occupy a table slot.
var LiveStatuses = []Status{StatusPending, StatusActive}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusActive
}

// ===============================
// Transitions
// ===============================

// CanTransition reports whether from -> to is allowed. Only live reservations
// move, and only into a terminal status.
func CanTransition(from, to Status) error {
	if from.IsTerminal() {
		if to == StatusCancelled {
			return ErrAlreadyTerminal
		}
		return ErrInvalidTransition
	}
	if !from.IsLive() || !to.IsTerminal() {
		return ErrInvalidTransition
	}
	return nil
}

// InitialStatus derives the creation status from the reservation date and
// today's date, both formatted as YYYY-MM-DD.
func InitialStatus(date, today string) Status {
	switch {
	case date < today:
		return StatusCompleted
	case date == today:
		return StatusActive
	default:
		return StatusPending
	}
}
