package timeutil

import "time"

// DisplayDate formats an ISO date string as e.g. "Friday, January 10" for
// email copy. Input that does not parse is passed through unchanged, session
// dates are free text in the UI.
func DisplayDate(dateString string) string {
	t, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		return dateString
	}
	return t.Format("Monday, January 2")
}
