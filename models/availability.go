package models

import "time"

// Override types. Order of application matters: overrides are applied in
// creation order, so a later AVAILABLE override can re-open time an earlier
// UNAVAILABLE or BLOCKED override closed.
const (
	OverrideAvailable   = "AVAILABLE"
	OverrideUnavailable = "UNAVAILABLE"
	OverrideBlocked     = "BLOCKED"
	OverrideTimeOff     = "TIME_OFF"
)

// TimeInterval is a half-open time window within a single day.
// Times are zero-padded 24-hour "HH:MM" strings, so lexicographic
// comparison equals chronological comparison.
type TimeInterval struct {
	Start string `bson:"start" json:"start" binding:"required"` // e.g. "09:00"
	End   string `bson:"end" json:"end" binding:"required"`     // e.g. "12:30"
}

// WeeklyTemplate holds a therapist's recurring default schedule, one optional
// interval list per weekday. It is replaced wholesale on update, never merged.
type WeeklyTemplate struct {
	Monday    []TimeInterval `bson:"monday,omitempty" json:"monday,omitempty"`
	Tuesday   []TimeInterval `bson:"tuesday,omitempty" json:"tuesday,omitempty"`
	Wednesday []TimeInterval `bson:"wednesday,omitempty" json:"wednesday,omitempty"`
	Thursday  []TimeInterval `bson:"thursday,omitempty" json:"thursday,omitempty"`
	Friday    []TimeInterval `bson:"friday,omitempty" json:"friday,omitempty"`
	Saturday  []TimeInterval `bson:"saturday,omitempty" json:"saturday,omitempty"`
	Sunday    []TimeInterval `bson:"sunday,omitempty" json:"sunday,omitempty"`
}

// ForWeekday returns the template's interval list for the given weekday.
func (t WeeklyTemplate) ForWeekday(day time.Weekday) []TimeInterval {
	switch day {
	case time.Monday:
		return t.Monday
	case time.Tuesday:
		return t.Tuesday
	case time.Wednesday:
		return t.Wednesday
	case time.Thursday:
		return t.Thursday
	case time.Friday:
		return t.Friday
	case time.Saturday:
		return t.Saturday
	default:
		return t.Sunday
	}
}

// AvailabilityOverride is a date-bounded exception to the weekly template:
// special hours, time off, or a blocked meeting. StartTime/EndTime absent
// means the override covers the whole day.
type AvailabilityOverride struct {
	ID          string    `bson:"id" json:"id,omitempty"`
	TherapistID string    `bson:"therapistId" json:"therapistId"`
	StartDate   string    `bson:"startDate" json:"startDate" binding:"required"` // "2006-01-02", inclusive
	EndDate     string    `bson:"endDate" json:"endDate" binding:"required"`     // inclusive
	StartTime   string    `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime     string    `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Type        string    `bson:"type" json:"type" binding:"required"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// IsWholeDay reports whether the override has no explicit time window.
func (o AvailabilityOverride) IsWholeDay() bool {
	return o.StartTime == "" || o.EndTime == ""
}

// EffectiveDayAvailability is the resolved, override-adjusted schedule for
// one concrete date. It is computed on demand and never stored.
type EffectiveDayAvailability struct {
	Date             string         `json:"date"`
	Weekday          string         `json:"weekday"`
	IsAvailable      bool           `json:"isAvailable"`
	Slots            []TimeInterval `json:"slots"`
	OverridesApplied []string       `json:"overridesApplied"`
}
