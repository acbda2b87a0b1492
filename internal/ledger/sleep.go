package ledger

import (
	"strconv"
	"strings"
)

// SleepHours returns the duration between two HH:MM clock times.
// A wake time earlier than the sleep time crosses midnight.
func SleepHours(sleepTime, wakeTime string) (float64, error) {
	sh, sm, err := parseClock(sleepTime)
	if err != nil {
		return 0, err
	}
	wh, wm, err := parseClock(wakeTime)
	if err != nil {
		return 0, err
	}

	minutes := float64(wm-sm) / 60
	if wh*60+wm < sh*60+sm {
		return float64(24-sh+wh) + minutes, nil
	}
	return float64(wh-sh) + minutes, nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}
