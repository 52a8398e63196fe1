package domain

import (
	"fmt"
	"time"
)

// Window names a feed retention horizon. Each window maps to a distinct
// upstream summary feed and a trailing daily-count chart length.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Windows lists all supported feed windows, shortest horizon first.
func Windows() []Window {
	return []Window{WindowDay, WindowWeek, WindowMonth}
}

// ParseWindow validates a window name from an external caller.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowDay, WindowWeek, WindowMonth:
		return Window(s), nil
	default:
		return "", fmt.Errorf("unknown feed window %q", s)
	}
}

// Span is the retention horizon the window's feed covers.
func (w Window) Span() time.Duration {
	switch w {
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// TrailingDays is the fixed length of the window's daily-count chart.
func (w Window) TrailingDays() int {
	switch w {
	case WindowDay:
		return 7
	case WindowWeek:
		return 14
	case WindowMonth:
		return 30
	default:
		return 0
	}
}

// FeedPath is the summary feed filename for the window on the upstream host.
func (w Window) FeedPath() string {
	switch w {
	case WindowDay:
		return "all_day.geojson"
	case WindowWeek:
		return "all_week.geojson"
	case WindowMonth:
		return "all_month.geojson"
	default:
		return ""
	}
}
