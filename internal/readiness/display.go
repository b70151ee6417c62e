package readiness

import "fmt"

// FormatTime renders seconds for display: "1h 2m 3s", "1h 3s", "5m 3s",
// "5m" or "42s". nil and zero render as "-".
func FormatTime(seconds *int) string {
	if seconds == nil || *seconds <= 0 {
		return "-"
	}
	s := *seconds
	h, m, sec := s/3600, (s%3600)/60, s%60

	if h > 0 {
		if m > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, sec)
		}
		return fmt.Sprintf("%dh %ds", h, sec)
	}
	if m > 0 {
		if sec > 0 {
			return fmt.Sprintf("%dm %ds", m, sec)
		}
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", sec)
}
