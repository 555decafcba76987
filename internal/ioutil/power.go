// Package ioutil implements the CSV/JSON readers and writers for the
// pipeline's external interfaces: per-minute power matrices,
// appliance labels, events, working spaces, schedules, and costs.
package ioutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"tariffsched/internal/model"
)

// LoadPowerMatrix reads the per-minute power CSV: a Time column (ISO
// timestamp, 1-minute grid) followed by one column per appliance.
// Malformed rows (bad timestamp, non-numeric power) are skipped with a
// logged warning and the pipeline continues. Missing cells are
// treated as 0 W.
func LoadPowerMatrix(path string) (model.PowerMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.PowerMatrix{}, fmt.Errorf("open power matrix: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return model.PowerMatrix{}, fmt.Errorf("read power matrix header: %w", err)
	}
	if len(header) < 2 || header[0] != "Time" {
		return model.PowerMatrix{}, fmt.Errorf("power matrix: expected Time column first, got %v", header)
	}
	appliances := header[1:]

	matrix := model.PowerMatrix{
		Appliances: appliances,
		Columns:    make([][]float64, len(appliances)),
	}

	rowNum := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			log.Printf("power matrix: skipping malformed row %d: %v", rowNum, err)
			continue
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			ts, err = time.Parse("2006-01-02 15:04:05", row[0])
		}
		if err != nil {
			log.Printf("power matrix: skipping row %d, bad timestamp %q", rowNum, row[0])
			continue
		}

		watts := make([]float64, len(appliances))
		malformed := false
		for i := range appliances {
			if i+1 >= len(row) || row[i+1] == "" {
				watts[i] = 0
				continue
			}
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				log.Printf("power matrix: skipping row %d, appliance %q: non-numeric power %q", rowNum, appliances[i], row[i+1])
				malformed = true
				break
			}
			watts[i] = v
		}
		if malformed {
			continue
		}

		matrix.Timestamps = append(matrix.Timestamps, ts)
		for i := range appliances {
			matrix.Columns[i] = append(matrix.Columns[i], watts[i])
		}
	}

	return matrix, nil
}

// LoadApplianceLabels reads the appliance label CSV:
// ApplianceID, ApplianceName, Shiftability, Pmin?, Tmin?.
func LoadApplianceLabels(path string) ([]model.ApplianceLabel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open appliance labels: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read appliance labels header: %w", err)
	}
	col := indexHeader(header)

	var out []model.ApplianceLabel
	rowNum := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			log.Printf("appliance labels: skipping malformed row %d: %v", rowNum, err)
			continue
		}

		label := model.ApplianceLabel{
			ApplianceID:   field(row, col, "ApplianceID"),
			ApplianceName: field(row, col, "ApplianceName"),
			Shiftability:  model.Shiftability(field(row, col, "Shiftability")),
		}
		if v := field(row, col, "Pmin"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				label.Pmin = f
			}
		}
		if v := field(row, col, "Tmin"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				label.Tmin = n
			}
		}
		out = append(out, label)
	}
	return out, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
