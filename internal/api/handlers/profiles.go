// Package handlers implements the gin HTTP surface over the simulation
// engine: running profile generations and validating catalogs.
package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"loadsim/internal/api/models"
	"loadsim/internal/catalog"
	"loadsim/internal/engine"
	"loadsim/internal/model"
)

// ProfileHandler handles profile-generation requests. Completed runs are
// kept in memory keyed by ID so a client can fetch them again without
// re-running the simulation; there is no eviction, matching the teacher's
// single-process deployment model.
type ProfileHandler struct {
	engine *engine.Engine

	mu   sync.RWMutex
	runs map[string]models.ProfileResponse
}

// NewProfileHandler returns a ProfileHandler.
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{engine: engine.New(), runs: make(map[string]models.ProfileResponse)}
}

// RunProfiles handles POST /api/v1/profiles.
func (h *ProfileHandler) RunProfiles(c *gin.Context) {
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	uc, err := catalog.LoadCSV(req.CatalogFile)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	result, err := h.engine.Run(context.Background(), engine.RunRequest{
		UseCase:     uc,
		NumProfiles: req.NumProfiles,
		DayType:     req.DayType,
		PeakEnlarge: req.PeakEnlarge,
		Seed:        req.Seed,
		Parallel:    req.Parallel,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	resp := models.ProfileResponse{
		ID:      uuid.NewString(),
		Status:  "completed",
		Summary: summarize(uc, result),
	}

	h.mu.Lock()
	h.runs[resp.ID] = models.ProfileResponse{ID: resp.ID, Status: resp.Status, Summary: resp.Summary, Profiles: flatten(result)}
	h.mu.Unlock()

	if req.IncludeData {
		resp.Profiles = flatten(result)
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /api/v1/profiles/:id, returning a previously
// computed run.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id := c.Param("id")

	h.mu.RLock()
	resp, ok := h.runs[id]
	h.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "no run with that id"},
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func summarize(uc *model.UseCase, result *engine.Result) models.RunSummary {
	summary := models.RunSummary{NumProfiles: len(result.Profiles), TotalUsers: len(uc.Users)}
	for _, u := range uc.Users {
		summary.TotalAppliances += len(u.Appliances)
	}
	var sum, peak float64
	count := 0
	for _, profile := range result.Profiles {
		for _, v := range profile {
			sum += v
			if v > peak {
				peak = v
			}
			count++
		}
	}
	summary.PeakPowerW = peak
	if count > 0 {
		summary.MeanPowerW = sum / float64(count)
	}
	return summary
}

func flatten(result *engine.Result) [][]float64 {
	out := make([][]float64, len(result.Profiles))
	for i, profile := range result.Profiles {
		row := make([]float64, len(profile))
		copy(row, profile[:])
		out[i] = row
	}
	return out
}

func writeEngineError(c *gin.Context, err error) {
	switch err.(type) {
	case *model.ConfigurationError:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{Code: "CONFIGURATION_ERROR", Message: err.Error()}})
	case *model.InvalidArgumentError:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{Code: "INVALID_ARGUMENT", Message: err.Error()}})
	case *model.RuntimeError:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrorDetail{Code: "RUNTIME_ERROR", Message: err.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()}})
	}
}
