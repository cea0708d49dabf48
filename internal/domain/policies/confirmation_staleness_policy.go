package policies

import "time"

// Thresholds shorter than the minimum are clamped so a misconfigured worker
// cannot flag every pending order as overdue on its first cycle.
const confirmationStaleMinimum = 10 * time.Minute

func ResolveConfirmationStaleDeadline(dispatchedAt time.Time, threshold time.Duration) time.Time {
	if threshold < confirmationStaleMinimum {
		threshold = confirmationStaleMinimum
	}

	return dispatchedAt.Add(threshold)
}
