package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tariffsched/internal/config"
	"tariffsched/internal/constraint"
	"tariffsched/internal/ioutil"
	"tariffsched/internal/model"
	"tariffsched/internal/pipeline"
	"tariffsched/internal/segment"
	"tariffsched/internal/space"
	"tariffsched/internal/tariff"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "segment":
		cmdSegment(os.Args[2:])
	case "space":
		cmdSpace(os.Args[2:])
	case "pipeline":
		cmdPipeline(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli segment --power power.csv --labels labels.csv --out events.csv")
	fmt.Println("  cli space --constraints constraints.json --tariff tariff.json --name <tariff_name> --out space.json")
	fmt.Println("  cli pipeline --config run.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - segment runs C2 over a per-minute power matrix and writes events with IDs")
	fmt.Println("  - space runs C1+C3+C4 for every appliance named in --constraints")
	fmt.Println("  - pipeline runs C2-C8 end to end for one house under one tariff scheme")
}

func cmdSegment(args []string) {
	fs := flag.NewFlagSet("segment", flag.ExitOnError)
	powerPath := fs.String("power", "", "Path to per-minute power matrix CSV")
	labelsPath := fs.String("labels", "", "Path to appliance labels CSV")
	outPath := fs.String("out", "results/events.csv", "Output events CSV path")
	_ = fs.Parse(args)

	if *powerPath == "" || *labelsPath == "" {
		fmt.Println("--power and --labels are required")
		os.Exit(2)
	}

	matrix, err := ioutil.LoadPowerMatrix(*powerPath)
	if err != nil {
		panic(err)
	}
	labels, err := ioutil.LoadApplianceLabels(*labelsPath)
	if err != nil {
		panic(err)
	}

	seg := segment.NewSegmenter()
	events := seg.Segment(matrix, labels)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := ioutil.WriteEventsCSV(*outPath, events); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d events to %s\n", len(events), *outPath)
}

func cmdSpace(args []string) {
	fs := flag.NewFlagSet("space", flag.ExitOnError)
	constraintsPath := fs.String("constraints", "", "Path to appliance constraints JSON")
	tariffPath := fs.String("tariff", "", "Path to tariff schemes JSON")
	tariffName := fs.String("name", "", "Tariff scheme name")
	outPath := fs.String("out", "results/space.json", "Output working-space JSON path")
	_ = fs.Parse(args)

	if *constraintsPath == "" || *tariffPath == "" || *tariffName == "" {
		fmt.Println("--constraints, --tariff, and --name are required")
		os.Exit(2)
	}

	constraints, err := constraint.LoadConstraints(*constraintsPath)
	if err != nil {
		panic(err)
	}
	schemes, err := tariff.LoadSchemes(*tariffPath)
	if err != nil {
		panic(err)
	}
	scheme, ok := schemes[*tariffName]
	if !ok {
		panic(fmt.Errorf("tariff %q not found in %s", *tariffName, *tariffPath))
	}

	// A CLI-driven space dump has no single timestamp to derive a
	// season from; default to the winter variant of seasonal schemes
	// since it is the broader of the two windows in practice.
	season := tariff.SeasonNone
	if scheme.Seasonal {
		season = tariff.SeasonWinter
	}

	spaces := make([]model.WorkingSpace, 0, len(constraints))
	for _, c := range constraints {
		spaces = append(spaces, space.Build(c, scheme, season))
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := ioutil.WriteWorkingSpaceJSON(*outPath, spaces); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d working spaces to %s\n", len(spaces), *outPath)
}

func cmdPipeline(args []string) {
	fs := flag.NewFlagSet("pipeline", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML run config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	matrix, err := ioutil.LoadPowerMatrix(cfg.House.PowerMatrixFile)
	if err != nil {
		panic(err)
	}
	labels, err := ioutil.LoadApplianceLabels(cfg.House.LabelsFile)
	if err != nil {
		panic(err)
	}
	constraints, err := constraint.LoadConstraints(cfg.Constraints)
	if err != nil {
		panic(err)
	}
	schemes, err := tariff.LoadSchemes(cfg.TariffFile)
	if err != nil {
		panic(err)
	}
	scheme, ok := schemes[cfg.TariffName]
	if !ok {
		panic(fmt.Errorf("tariff %q not found in %s", cfg.TariffName, cfg.TariffFile))
	}

	in := pipeline.Input{
		House:       cfg.House.Name,
		Matrix:      matrix,
		Labels:      labels,
		Constraints: constraints,
		Scheme:      scheme,
		TariffName:  cfg.TariffName,
		SeasonFor:   buildSeasonFor(scheme),
	}

	result, err := pipeline.Run(pipeline.NewContext(), in)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		panic(err)
	}

	if err := ioutil.WriteEventsCSV(filepath.Join(cfg.Output.Dir, "events.csv"), result.Events); err != nil {
		panic(err)
	}
	if err := writeScheduleAndCost(cfg.Output.Dir, result); err != nil {
		panic(err)
	}

	fmt.Printf("Run %s: %d events, %d scheduled, savings=%.2f%%\n",
		result.RunID, result.HouseSummary.EventCount, result.HouseSummary.ScheduledCount,
		result.HouseSummary.SavingsFraction()*100)
}

func buildSeasonFor(scheme *tariff.Scheme) func(t time.Time) tariff.Season {
	if !scheme.Seasonal {
		return func(time.Time) tariff.Season { return tariff.SeasonNone }
	}
	return func(t time.Time) tariff.Season { return tariff.SeasonForMonth(int(t.Month())) }
}

func writeScheduleAndCost(dir string, result *pipeline.Result) error {
	rows := make([]ioutil.ScheduleRow, len(result.Events))
	costRows := make([]ioutil.CostRow, len(result.Events))
	for i, e := range result.Events {
		d := result.Decisions[i]
		rows[i] = ioutil.ScheduleRow{
			Decision:      d,
			ApplianceName: e.ApplianceName,
			OriginalDay:   e.StartTime,
		}
		ec := result.EventCosts[i]
		costRows[i] = ioutil.CostRow{
			EventID:        e.EventID,
			ApplianceName:  e.ApplianceName,
			ScheduleStatus: d.Status,
			OrigTotalCost:  ec.OrigTotalCost,
			SchedTotalCost: ec.SchedTotalCost,
		}
	}

	if err := ioutil.WriteScheduledEventsCSV(filepath.Join(dir, "scheduled_events.csv"), rows); err != nil {
		return err
	}
	return ioutil.WriteCostCSV(filepath.Join(dir, "cost.csv"), costRows)
}
