package utils

import "time"

// FormatTime renders a timestamp the way Discord clients phrase recent times.
func FormatTime(t time.Time) string {
	now := time.Now()

	if now.Sub(t) < 24*time.Hour {
		return t.Format("Today at 3:04 PM")
	} else if now.Sub(t) < 48*time.Hour {
		return t.Format("Yesterday at 3:04 PM")
	}

	return t.Format("Jan 2 at 3:04 PM")
}
