package medicine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate reports a start date that does not parse as ISO-8601.
var ErrInvalidDate = errors.New("invalid start date")

const (
	dateOnlyLayout = "2006-01-02"
	naiveLayout    = "2006-01-02T15:04:05"
)

// startDateLayouts are tried in order. The offset-carrying form comes first
// so an explicit zone is preserved; a date-only input normalizes to midnight.
var startDateLayouts = []string{
	time.RFC3339,
	naiveLayout,
	dateOnlyLayout,
}

// DeriveEndDate returns startDate plus durationDays calendar days as an
// ISO-8601 date/time string. The addition is pure calendar arithmetic: no
// clamping and no timezone conversion, so an input carrying an offset keeps
// that offset and a naive input stays naive.
func DeriveEndDate(startDate string, durationDays int) (string, error) {
	for _, layout := range startDateLayouts {
		start, err := time.Parse(layout, startDate)
		if err != nil {
			continue
		}
		end := start.AddDate(0, 0, durationDays)
		if layout == dateOnlyLayout {
			return end.Format(naiveLayout), nil
		}
		return end.Format(layout), nil
	}
	return "", fmt.Errorf("%w: %q is not ISO-8601", ErrInvalidDate, startDate)
}

// applyEndDateRule derives m.EndDate when a start date and a non-zero
// duration are present and no end date was supplied. A zero duration counts
// as absent. An explicit end date always wins and is never recomputed, on
// create or update.
func applyEndDateRule(m *Medicine) error {
	if m.StartDate == nil || *m.StartDate == "" || m.DurationDays == nil || *m.DurationDays == 0 {
		return nil
	}
	if m.EndDate != nil && *m.EndDate != "" {
		return nil
	}
	end, err := DeriveEndDate(*m.StartDate, *m.DurationDays)
	if err != nil {
		return err
	}
	m.EndDate = &end
	return nil
}
