package schedule

import "fmt"

// windowMinutes is how far past the requested departure time the query looks.
const windowMinutes = 10

// Window converts a requested departure time ("HH:mm", 24-hour) into the
// inclusive arrival-time window [start, end] as HH:mm:ss strings. The end is
// ten minutes after the start with minute/hour carry; the hour wraps past
// midnight without advancing the date, so a 23:55 query yields the window
// ["23:55:00", "00:05:00"] whose end compares lexically below its start.
// That quirk is deliberate and relied on by callers.
func Window(depTime string) (start, end string) {
	var h, m int
	fmt.Sscanf(depTime, "%d:%d", &h, &m)

	start = fmt.Sprintf("%02d:%02d:00", h, m)

	m += windowMinutes
	if m >= 60 {
		m -= 60
		h++
	}
	if h >= 24 {
		h -= 24
	}
	end = fmt.Sprintf("%02d:%02d:00", h, m)
	return start, end
}
