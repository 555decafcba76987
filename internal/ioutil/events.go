package ioutil

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"tariffsched/internal/model"
)

const timeLayout = "2006-01-02T15:04:05"

// WriteEventsCSV writes the "events with IDs" output.
func WriteEventsCSV(path string, events []model.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"event_id", "appliance_id", "appliance_name", "shiftability",
		"start_time", "end_time", "duration_min", "energy_W", "is_reschedulable",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range events {
		row := []string{
			e.EventID,
			e.ApplianceID,
			e.ApplianceName,
			string(e.Shiftability),
			e.StartTime.Format(timeLayout),
			e.EndTime.Format(timeLayout),
			strconv.Itoa(e.DurationMin),
			fmtFloat(e.EnergyWMin),
			strconv.FormatBool(e.IsReschedulable),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ScheduleRow is one output row of the "scheduled events" CSV; it
// combines the decision with the appliance name and optional season.
type ScheduleRow struct {
	Decision      model.ScheduleDecision
	ApplianceName string
	Season        string
	OriginalDay   time.Time // calendar date the original event started on
}

// WriteScheduledEventsCSV writes the "scheduled events" output of
// the scheduling pipeline.
func WriteScheduledEventsCSV(path string, rows []ScheduleRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"event_id", "appliance_name",
		"original_start_time", "original_end_time",
		"scheduled_start_time", "scheduled_end_time",
		"original_price_level", "scheduled_price_level",
		"optimization_score", "shift_minutes",
		"schedule_status", "failure_reason", "season",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		d := row.Decision
		origStart := minutesToTime(row.OriginalDay, d.OriginalStart)
		origEnd := minutesToTime(row.OriginalDay, d.OriginalEnd)
		schedStart := minutesToTime(row.OriginalDay, d.ScheduledStart)
		schedEnd := minutesToTime(row.OriginalDay, d.ScheduledEnd)

		out := []string{
			d.EventID,
			row.ApplianceName,
			origStart.Format(timeLayout),
			origEnd.Format(timeLayout),
			schedStart.Format(timeLayout),
			schedEnd.Format(timeLayout),
			strconv.Itoa(d.OriginalLevel),
			strconv.Itoa(d.ScheduledLevel),
			fmtFloat(d.OptimizationScore),
			strconv.Itoa(d.ShiftMinutes),
			string(d.Status),
			string(d.FailureReason),
			row.Season,
		}
		if err := w.Write(out); err != nil {
			return err
		}
	}
	return w.Error()
}

// minutesToTime converts a minute-from-midnight offset (possibly
// beyond 1440, for 48h-horizon events) back to an absolute timestamp
// anchored on day.
func minutesToTime(day time.Time, minuteOfDay int) time.Time {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return base.Add(time.Duration(minuteOfDay) * time.Minute)
}

// CostRow is one row of the migrated/non-migrated cost CSV.
type CostRow struct {
	EventID        string
	ApplianceName  string
	ScheduleStatus model.ScheduleStatus
	OrigTotalCost  float64
	SchedTotalCost float64
}

// WriteCostCSV writes the scheduled/unscheduled cost split, one file
// covering both subsets (distinguished by the schedule_status column).
func WriteCostCSV(path string, rows []CostRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"event_id", "appliance_name", "schedule_status",
		"orig_total_cost", "sched_total_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		out := []string{
			r.EventID,
			r.ApplianceName,
			string(r.ScheduleStatus),
			fmtFloat(r.OrigTotalCost),
			fmtFloat(r.SchedTotalCost),
		}
		if err := w.Write(out); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
