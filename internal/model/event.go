// Package model holds the value types shared across the scheduling
// pipeline: events, constraints, working spaces and schedule decisions.
// The power matrix is column-major; a working space keys its interval
// lists by price level.
package model

import "time"

// Shiftability classifies how an appliance's events may be treated by
// the scheduler.
type Shiftability string

const (
	Shiftable    Shiftability = "Shiftable"
	Base         Shiftability = "Base"
	NonShiftable Shiftability = "NonShiftable"
)

// FailureReason enumerates why a reschedulable event failed to move.
type FailureReason string

const (
	FailureNone                FailureReason = ""
	FailureNoWorkingSpace      FailureReason = "NoWorkingSpace"
	FailureDurationBelowMin    FailureReason = "DurationBelowMinimum"
	FailureNoValidCandidate    FailureReason = "NoValidCandidate"
	FailureForbiddenOverlap    FailureReason = "ForbiddenOverlap"
	FailureShiftRuleViolated   FailureReason = "ShiftRuleViolated"
	FailureDeadlineUnreachable FailureReason = "DeadlineUnreachable"
	FailureCollisionUnresolved FailureReason = "CollisionUnresolved"
)

// ScheduleStatus is the outcome of attempting to reschedule an event.
type ScheduleStatus string

const (
	StatusSuccess ScheduleStatus = "SUCCESS"
	StatusFailed  ScheduleStatus = "FAILED"
)

// Event is an immutable record produced by segmentation (C2), tagged
// by the filter (C5), scheduled by C6, and possibly edited by C7.
type Event struct {
	EventID         string
	ApplianceID     string
	ApplianceName   string
	Shiftability    Shiftability
	StartTime       time.Time
	EndTime         time.Time
	DurationMin     int
	EnergyWMin      float64
	PowerProfile    []float64// watts per minute, len == DurationMin
	IsReschedulable bool

	// PrimaryPriceLevel is set by filter Pass B; -1 until computed.
	PrimaryPriceLevel int
}

// OriginalStartMinuteOfDay returns the event's start offset in minutes
// from midnight of its own start day.
func (e *Event) OriginalStartMinuteOfDay() int {
	return e.StartTime.Hour()*60 + e.StartTime.Minute()
}
