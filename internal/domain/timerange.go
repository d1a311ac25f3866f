package domain

import (
	"fmt"
	"time"
)

const rangeTimeLayout = "2006-01-02 15:04:05"

// TimeRange is a closed interval [From, To]. From never exceeds To.
type TimeRange struct {
	From time.Time
	To   time.Time
}

func NewTimeRange(from, to time.Time) (TimeRange, error) {
	if from.After(to) {
		return TimeRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidTimeRange, from.Format(rangeTimeLayout), to.Format(rangeTimeLayout))
	}

	return TimeRange{From: from, To: to}, nil
}

func (r TimeRange) Duration() time.Duration {
	return r.To.Sub(r.From)
}

func (r TimeRange) Contains(other TimeRange) bool {
	return !other.From.Before(r.From) && !other.To.After(r.To)
}

// Format renders the range in UTC as "2006-01-02 15:04:05 - 2006-01-02 15:04:05".
// Session fingerprints hash this exact representation, so the layout is part of
// the cross-run identity contract and must not change.
func (r TimeRange) Format() string {
	return r.From.UTC().Format(rangeTimeLayout) + " - " + r.To.UTC().Format(rangeTimeLayout)
}

// FormatDuration renders the span as "1d 2h 3m 4s".
func (r TimeRange) FormatDuration() string {
	seconds := int64(r.Duration() / time.Second)
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60

	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds%60)
}

// RoundToQuarterHour rounds both endpoints to the nearest quarter hour. Used
// for display only; fingerprints always hash the unrounded range.
func (r TimeRange) RoundToQuarterHour() TimeRange {
	return TimeRange{
		From: r.From.Round(15 * time.Minute),
		To:   r.To.Round(15 * time.Minute),
	}
}
