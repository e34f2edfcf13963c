package listing

import "time"

// IsPriorityActive reports whether the listing is currently restricted to
// charitable organisations.
func (l *Listing) IsPriorityActive(now time.Time) bool {
	return l.priorityUntil != nil && now.Before(*l.priorityUntil)
}

// PriorityRemaining returns the countdown surfaced on organisation
// dashboards. Zero once the window has elapsed or was never requested.
func (l *Listing) PriorityRemaining(now time.Time) time.Duration {
	if !l.IsPriorityActive(now) {
		return 0
	}
	return l.priorityUntil.Sub(now)
}
