package parallel

import (
	"fmt"
	"strconv"
	"strings"
)

// Threshold is the estimated pixel area at or above which a fill runs on
// all partitions instead of the master alone.
type Threshold int

const (
	ThresholdAlways  Threshold = 0
	ThresholdHigh    Threshold = 8192
	ThresholdMedium  Threshold = 16384
	ThresholdLow     Threshold = 32768
	ThresholdVeryLow Threshold = 65536
)

var thresholdNames = map[string]Threshold{
	"always":   ThresholdAlways,
	"high":     ThresholdHigh,
	"medium":   ThresholdMedium,
	"low":      ThresholdLow,
	"very_low": ThresholdVeryLow,
}

func (t Threshold) String() string {
	for name, v := range thresholdNames {
		if v == t {
			return name
		}
	}
	return strconv.Itoa(int(t))
}

// ParseThreshold accepts a level name ("always", "high", "medium", "low",
// "very_low") or a non-negative pixel count.
func ParseThreshold(s string) (Threshold, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "verylow" {
		key = "very_low"
	}
	if t, ok := thresholdNames[key]; ok {
		return t, nil
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("parallel: invalid threshold %q", s)
	}
	return Threshold(n), nil
}
