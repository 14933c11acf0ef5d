package utils

import "time"

// ISOLayout matches JavaScript's Date.prototype.toISOString, which is how
// timestamps were written by the earlier Node deployment.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO renders t in UTC. Zero times render as "".
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOLayout)
}

// ParseISO accepts anything RFC3339 accepts. Empty or malformed input yields
// the zero time.
func ParseISO(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
