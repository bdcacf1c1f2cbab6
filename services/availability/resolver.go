package availability

import (
	"sort"
	"time"

	"therapair/models"
)

// ResolveDay computes the effective open intervals for one therapist on one
// date by merging the weekly template with every override whose date range
// contains the date.
//
// Overrides are applied in the order the caller supplies them; callers must
// pass them in creation order. The ordering is a contract, not an accident:
// a later AVAILABLE override re-opens time an earlier UNAVAILABLE or BLOCKED
// override closed.
//
// The function is pure. Identical inputs always produce identical output.
func ResolveDay(template models.WeeklyTemplate, overrides []models.AvailabilityOverride, date string) (models.EffectiveDayAvailability, error) {
	day, err := ParseDate("date", date)
	if err != nil {
		return models.EffectiveDayAvailability{}, err
	}

	base := template.ForWeekday(day.Weekday())
	slots := make([]models.TimeInterval, len(base))
	copy(slots, base)
	isAvailable := len(slots) > 0

	applied := make([]string, 0, len(overrides))
	for _, o := range overrides {
		if date < o.StartDate || date > o.EndDate {
			continue
		}
		applied = append(applied, o.ID)

		switch o.Type {
		case models.OverrideUnavailable, models.OverrideTimeOff:
			if o.IsWholeDay() {
				slots = slots[:0]
				isAvailable = false
				continue
			}
			if err := ValidateInterval("override", o.StartTime, o.EndTime); err != nil {
				return models.EffectiveDayAvailability{}, err
			}
			slots = dropOverlapping(slots, o.StartTime, o.EndTime)

		case models.OverrideBlocked:
			// Blocked meetings subtract time but never flip the day's
			// availability flag, even when they empty every slot.
			if o.IsWholeDay() {
				slots = slots[:0]
				continue
			}
			if err := ValidateInterval("override", o.StartTime, o.EndTime); err != nil {
				return models.EffectiveDayAvailability{}, err
			}
			slots = dropOverlapping(slots, o.StartTime, o.EndTime)

		case models.OverrideAvailable:
			isAvailable = true
			if o.IsWholeDay() {
				continue
			}
			if err := ValidateInterval("override", o.StartTime, o.EndTime); err != nil {
				return models.EffectiveDayAvailability{}, err
			}
			// Appended as-is. Overlap against existing open intervals is not
			// merged; the output stays sorted but may contain overlaps.
			slots = append(slots, models.TimeInterval{Start: o.StartTime, End: o.EndTime})

		default:
			return models.EffectiveDayAvailability{}, NewValidationError("override.type", "unknown override type: "+o.Type)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return models.EffectiveDayAvailability{
		Date:             date,
		Weekday:          WeekdayName(day.Weekday()),
		IsAvailable:      isAvailable,
		Slots:            slots,
		OverridesApplied: applied,
	}, nil
}

// dropOverlapping removes every slot that overlaps the half-open window
// [start,end). Slots are dropped whole, never split: a slot survives only if
// it ends at or before the window starts, or starts at or after it ends.
func dropOverlapping(slots []models.TimeInterval, start, end string) []models.TimeInterval {
	kept := slots[:0]
	for _, s := range slots {
		if s.End <= start || s.Start >= end {
			kept = append(kept, s)
		}
	}
	return kept
}

// ResolveRange resolves every calendar date from startDate to endDate
// inclusive, re-filtering the override set per day. There is no cross-day
// state; each element is exactly what ResolveDay returns for that date.
func ResolveRange(template models.WeeklyTemplate, overrides []models.AvailabilityOverride, startDate, endDate string) ([]models.EffectiveDayAvailability, error) {
	start, err := ParseDate("startDate", startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate("endDate", endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, NewValidationError("startDate", "startDate must not be after endDate")
	}

	var days []models.EffectiveDayAvailability
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day, err := ResolveDay(template, overrides, d.Format(DateLayout))
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// IsAvailableFor reports whether the therapist's resolved schedule for the
// date has a single slot fully containing [start,end). Partial overlap does
// not count.
func IsAvailableFor(template models.WeeklyTemplate, overrides []models.AvailabilityOverride, date, start, end string) (bool, error) {
	if err := ValidateInterval("window", start, end); err != nil {
		return false, err
	}
	day, err := ResolveDay(template, overrides, date)
	if err != nil {
		return false, err
	}
	for _, s := range day.Slots {
		if s.Start <= start && end <= s.End {
			return true, nil
		}
	}
	return false, nil
}

// weekdayFromName maps the lowercase wire name back to a time.Weekday.
func weekdayFromName(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if WeekdayName(d) == name {
			return d, true
		}
	}
	return time.Sunday, false
}

// NextDateForWeekday returns the first date at or after from that falls on
// the named weekday. Used by callers that turn weekly preferences into
// concrete dates.
func NextDateForWeekday(from time.Time, weekday string) (time.Time, error) {
	target, ok := weekdayFromName(weekday)
	if !ok {
		return time.Time{}, NewValidationError("weekday", "unknown weekday: "+weekday)
	}
	offset := (int(target) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset), nil
}
