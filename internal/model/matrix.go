package model

import "time"

// PowerMatrix is the per-minute, multi-appliance power reading stream,
// represented column-major: one timestamp axis shared across all
// appliance columns.
type PowerMatrix struct {
	Timestamps []time.Time
	Appliances []string // column names, parallel to Columns
	Columns    [][]float64 // Columns[col][minute] = watts
}

// ApplianceLabel carries the segmentation thresholds and shiftability
// tag for one appliance column.
type ApplianceLabel struct {
	ApplianceID   string
	ApplianceName string
	Shiftability  Shiftability
	Pmin          float64 // watts; on-threshold
	Tmin          int     // minutes; minimum run length
}

// DefaultThresholds fills Pmin/Tmin when a label omits them.
func DefaultThresholds(shiftability Shiftability) (pmin float64, tmin int) {
	if shiftability == Base {
		return 5, 10
	}
	return 10, 5
}
