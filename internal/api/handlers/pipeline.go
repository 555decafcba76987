package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"tariffsched/internal/api/models"
	"tariffsched/internal/constraint"
	"tariffsched/internal/ioutil"
	"tariffsched/internal/pipeline"
	"tariffsched/internal/tariff"

	"github.com/gin-gonic/gin"
)

// PipelineHandler serves the C2-C8 scheduling pipeline over HTTP.
type PipelineHandler struct{}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler() *PipelineHandler {
	return &PipelineHandler{}
}

// RunPipeline handles POST /api/v1/run: segment, filter, schedule,
// and cost a single house against a single named tariff.
func (h *PipelineHandler) RunPipeline(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	in, err := h.buildInput(req.House, req.TariffFile, req.TariffName, req.Constraints)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_INPUT", Message: err.Error()},
		})
		return
	}

	ctx := pipeline.NewContext()
	result, err := pipeline.Run(ctx, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PIPELINE_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(result))
}

// RunBatch handles POST /api/v1/batch: runs the pipeline for every
// house in the request and ranks them by savings fraction.
func (h *PipelineHandler) RunBatch(c *gin.Context) {
	var req models.BatchRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	rankings := make([]models.HouseRanking, 0, len(req.Houses))
	for _, house := range req.Houses {
		in, err := h.buildInput(house, req.TariffFile, req.TariffName, req.Constraints)
		if err != nil {
			continue
		}
		result, err := pipeline.Run(pipeline.NewContext(), in)
		if err != nil {
			continue
		}
		rankings = append(rankings, models.HouseRanking{
			House:           house.Name,
			TotalOrigCost:   result.HouseSummary.TotalOrigCost,
			TotalSchedCost:  result.HouseSummary.TotalSchedCost,
			SavingsFraction: result.HouseSummary.SavingsFraction(),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].SavingsFraction > rankings[j].SavingsFraction
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	c.JSON(http.StatusOK, models.BatchRunResponse{Rankings: rankings})
}

func (h *PipelineHandler) buildInput(house models.HouseInput, tariffFile, tariffName, constraintsFile string) (pipeline.Input, error) {
	matrix, err := ioutil.LoadPowerMatrix(house.PowerMatrixFile)
	if err != nil {
		return pipeline.Input{}, err
	}
	labels, err := ioutil.LoadApplianceLabels(house.LabelsFile)
	if err != nil {
		return pipeline.Input{}, err
	}
	constraints, err := constraint.LoadConstraints(constraintsFile)
	if err != nil {
		return pipeline.Input{}, err
	}
	schemes, err := tariff.LoadSchemes(tariffFile)
	if err != nil {
		return pipeline.Input{}, err
	}
	scheme, ok := schemes[tariffName]
	if !ok {
		return pipeline.Input{}, fmt.Errorf("tariff %q not found in %s", tariffName, tariffFile)
	}

	return pipeline.Input{
		House:       house.Name,
		Matrix:      matrix,
		Labels:      labels,
		Constraints: constraints,
		Scheme:      scheme,
		TariffName:  tariffName,
		SeasonFor:   seasonForScheme(scheme),
	}, nil
}

// seasonForScheme resolves the per-timestamp season used by a
// seasonal scheme's RateAt/LevelAt lookups, defaulting to the
// May-October/November-April split unless the scheme is
// not seasonal at all.
func seasonForScheme(scheme *tariff.Scheme) func(time.Time) tariff.Season {
	if !scheme.Seasonal {
		return func(time.Time) tariff.Season { return tariff.SeasonNone }
	}
	return func(t time.Time) tariff.Season { return tariff.SeasonForMonth(int(t.Month())) }
}

func (h *PipelineHandler) buildResponse(result *pipeline.Result) models.RunResponse {
	summary := models.RunSummary{
		TariffName:      result.HouseSummary.TariffName,
		EventCount:      result.HouseSummary.EventCount,
		ScheduledCount:  result.HouseSummary.ScheduledCount,
		TotalOrigCost:   result.HouseSummary.TotalOrigCost,
		TotalSchedCost:  result.HouseSummary.TotalSchedCost,
		SavingsFraction: result.HouseSummary.SavingsFraction(),
	}

	events := make([]models.EventOut, len(result.Events))
	for i, e := range result.Events {
		d := result.Decisions[i]
		events[i] = models.EventOut{
			EventID:           e.EventID,
			ApplianceName:     e.ApplianceName,
			OriginalStart:     d.OriginalStart,
			ScheduledStart:    d.ScheduledStart,
			OriginalLevel:     d.OriginalLevel,
			ScheduledLevel:    d.ScheduledLevel,
			Status:            string(d.Status),
			FailureReason:     string(d.FailureReason),
			ShiftMinutes:      d.ShiftMinutes,
			OptimizationScore: d.OptimizationScore,
		}
	}

	return models.RunResponse{
		RunID:   result.RunID,
		Status:  "completed",
		Summary: summary,
		Events:  events,
	}
}
