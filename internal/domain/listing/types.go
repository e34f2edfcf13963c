package listing

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further mutation is allowed. Expired,
// completed and cancelled listings only ever serve reads.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusExpired, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
