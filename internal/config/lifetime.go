package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ParseLifetime accepts a Go duration ("15m", "1h30m"), a bare number of
// seconds ("900") or a number of days ("7d").
func ParseLifetime(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty lifetime")
	}

	var d time.Duration
	switch {
	case strings.HasSuffix(value, "d"):
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil {
			return 0, errors.Wrapf(err, "invalid lifetime %q", value)
		}
		d = time.Duration(days) * 24 * time.Hour
	default:
		if secs, err := strconv.Atoi(value); err == nil {
			d = time.Duration(secs) * time.Second
			break
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid lifetime %q", value)
		}
		d = parsed
	}

	if d <= 0 {
		return 0, errors.Errorf("lifetime %q must be positive", value)
	}
	return d, nil
}
