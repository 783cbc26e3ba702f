package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"datahub_sim/internal/loader"
	"datahub_sim/internal/models"
	"datahub_sim/internal/service"
	"datahub_sim/internal/simulation"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "

	errRunFailed     = "failed to run simulation"
	errCompareFailed = "failed to compare schedulers"
	errGetRun        = "failed to load run"
	errListRuns      = "failed to list runs"

	defaultListLimit = 20
	maxListLimit     = 200
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// writeSimulationError maps service errors onto HTTP codes: request and
// data-contract problems are the client's fault, the rest are ours.
func (h *Handler) writeSimulationError(c *gin.Context, err error, userMsg, logKey string) {
	var verr *models.ValidationError
	var dfe *simulation.DataFormatError
	switch {
	case errors.Is(err, service.ErrUnknownScheduler),
		errors.As(err, &verr),
		errors.As(err, &dfe):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Run a simulation
// @Description  Executes one 24h scheduling run and persists the result. Scheduler is "baseline" or "smart" (default).
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body   service.RunParams  true  "Run parameters"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations/run [post]
// @Security     BearerAuth
func (h *Handler) runSimulation(c *gin.Context) {
	var params service.RunParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	run, err := h.services.Simulations.Run(c.Request.Context(), params)
	if err != nil {
		h.writeSimulationError(c, err, errRunFailed, "simulation_run_failed")
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      Run a simulation from a jobs CSV
// @Description  Body is a CSV with columns name, power_kw, duration_min, priority and optional deadline_hour. Scheduler comes from the query.
// @Tags         simulations
// @Accept       plain
// @Produce      json
// @Param        scheduler  query  string  false  "baseline or smart"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations/run/csv [post]
// @Security     BearerAuth
func (h *Handler) runSimulationCSV(c *gin.Context) {
	jobs, err := loader.ParseJobs(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.RunParams{Scheduler: c.Query("scheduler")}
	for _, j := range jobs {
		params.Jobs = append(params.Jobs, service.JobSpec{
			Name:         j.Name,
			PowerKW:      j.PowerKW,
			DurationMin:  j.DurationMin,
			Priority:     j.Priority,
			DeadlineHour: j.DeadlineHour,
		})
	}

	run, err := h.services.Simulations.Run(c.Request.Context(), params)
	if err != nil {
		h.writeSimulationError(c, err, errRunFailed, "simulation_run_csv_failed")
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      Compare schedulers
// @Description  Runs baseline and smart over the same jobs and conditions; persists both runs and returns the savings.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body   service.RunParams  true  "Run parameters; the scheduler field is ignored"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations/compare [post]
// @Security     BearerAuth
func (h *Handler) compareSchedulers(c *gin.Context) {
	var params service.RunParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	cmp, err := h.services.Simulations.Compare(c.Request.Context(), params)
	if err != nil {
		h.writeSimulationError(c, err, errCompareFailed, "simulation_compare_failed")
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// @Summary      List recent runs
// @Tags         simulations
// @Produce      json
// @Param        limit  query  int  false  "Max runs to return (default 20, cap 200)"
// @Success      200  {object}  map[string]interface{}  "count, runs"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	limit := defaultListLimit
	if qs := c.Query("limit"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 && v <= maxListLimit {
			limit = v
		}
	}

	runs, err := h.services.Simulations.List(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRuns, "simulation_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get one run
// @Description  Returns a stored run with its full step log and job outcomes.
// @Tags         simulations
// @Produce      json
// @Param        id  path  string  true  "Run id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRun(c *gin.Context) {
	run, err := h.services.Simulations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeSimulationError(c, err, errGetRun, "simulation_get_failed")
		return
	}
	c.JSON(http.StatusOK, run)
}
