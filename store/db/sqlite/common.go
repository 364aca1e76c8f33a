package sqlite

import (
	"strings"
	"time"
)

// placeholder returns a placeholder for SQLite (uses ?)
func placeholder(_ int) string {
	return "?"
}

// placeholders returns n placeholders for SQLite
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

// formatDate renders a day for the date columns ("2006-01-02").
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// parseDate parses a nullable date column back into a day.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
