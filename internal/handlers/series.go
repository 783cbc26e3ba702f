package handlers

import (
	"net/http"

	"datahub_sim/internal/loader"
	"datahub_sim/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusUploaded = "uploaded"
	statusDeleted  = "deleted"

	errSeriesStatus = "failed to load series status"
	errSeriesUpload = "failed to store series"
	errSeriesDelete = "failed to delete series"
)

// seriesKindParam resolves the :kind path segment, writing a 400 on an
// unknown kind. Returns false if the request was already handled.
func (h *Handler) seriesKindParam(c *gin.Context) (models.SeriesKind, bool) {
	kind, err := models.ParseSeriesKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return kind, true
}

// @Summary      Series status
// @Description  Reports, per series kind, whether uploaded data is stored.
// @Tags         series
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "series"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/series [get]
// @Security     BearerAuth
func (h *Handler) seriesStatus(c *gin.Context) {
	statuses, err := h.services.Series.Status(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSeriesStatus, "series_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": statuses})
}

// @Summary      Upload a series
// @Description  Body is a CSV with an "hour" column and the kind's value column (solar_kw, temp_c, or price). Replaces any stored data for the kind.
// @Tags         series
// @Accept       plain
// @Produce      json
// @Param        kind  path  string  true  "solar | temperature | price"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/series/{kind} [post]
// @Security     BearerAuth
func (h *Handler) uploadSeries(c *gin.Context) {
	kind, ok := h.seriesKindParam(c)
	if !ok {
		return
	}

	points, err := loader.ParseSeries(c.Request.Body, kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Series.Upload(c.Request.Context(), kind, points); err != nil {
		h.writeSimulationError(c, err, errSeriesUpload, "series_upload_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusUploaded,
		"kind":   kind,
		"points": len(points),
	})
}

// @Summary      Delete a series
// @Description  Removes stored data for the kind; runs fall back to the synthetic model.
// @Tags         series
// @Produce      json
// @Param        kind  path  string  true  "solar | temperature | price"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/series/{kind} [delete]
// @Security     BearerAuth
func (h *Handler) deleteSeries(c *gin.Context) {
	kind, ok := h.seriesKindParam(c)
	if !ok {
		return
	}
	if err := h.services.Series.Delete(c.Request.Context(), kind); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSeriesDelete, "series_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "kind": string(kind)})
}
