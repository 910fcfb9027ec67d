package types

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StatusLabel converts a wire status such as "in_progress" to "In Progress"
func StatusLabel[S ~string](s S) string {
	words := []rune(string(s))
	for i, r := range words {
		if r == '_' {
			words[i] = ' '
		}
	}
	// a Caser keeps state, so one is made per call
	return cases.Title(language.English).String(string(words))
}

// FormatDate converts a YYYY-MM-DD date to "2 Jan 2026"
func FormatDate(dateString string) string {
	if dateString == "" {
		return "N/A"
	}
	t, err := time.Parse(time.DateOnly, dateString)
	if err != nil {
		return dateString
	}
	return t.Format("2 Jan 2006")
}

// FormatDateTime converts an RFC3339 datetime string to YYYY-MM-DD HH:MM
func FormatDateTime(dateString string) string {
	t, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return dateString
	}

	return t.Format("2006-01-02 15:04")
}
