package liveview

import (
	"fmt"
	"time"
)

// AbsoluteLayout renders placement times on cards.
const AbsoluteLayout = "02 Jan 2006 15:04"

// RelativeLabel describes how long ago t was, relative to now. Times in the
// future, which happen with small clock skew between hosts, read "just now".
func RelativeLabel(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%d d ago", int(d/(24*time.Hour)))
	}
}

// AbsoluteLabel formats t in the outlet's time zone.
func AbsoluteLabel(t time.Time, location *time.Location) string {
	if location == nil {
		location = time.Local
	}
	return t.In(location).Format(AbsoluteLayout)
}
