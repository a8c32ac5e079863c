package domain

import "time"

// ReviewedLabel returns a user-friendly label for the last review time
func ReviewedLabel(reviewedAt, now time.Time) string {
	reviewedAt = reviewedAt.In(now.Location())

	if sameDay(reviewedAt, now) {
		return "Today"
	}

	if sameDay(reviewedAt, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return reviewedAt.Format("2 Jan 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
