package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// msEpsilon absorbs binary floating point error (2.3*1000 = 2299.9999...)
// before milliseconds are truncated.
const msEpsilon = 1e-6

// FormatTimestamp converts seconds to SRT time format HH:MM:SS,mmm.
// Milliseconds are truncated, never rounded. Negative input clamps to zero.
func FormatTimestamp(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "00:00:00,000"
	}
	totalMillis := int64(math.Floor(seconds*1000 + msEpsilon))
	hours := totalMillis / 3_600_000
	minutes := totalMillis / 60_000 % 60
	secs := totalMillis / 1000 % 60
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp parses an SRT timestamp back into seconds. A period is
// accepted in place of the comma before the milliseconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
