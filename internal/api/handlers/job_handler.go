package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TwisterMc/JobTwister/internal/models"
	"github.com/TwisterMc/JobTwister/internal/repositories/store"
	"github.com/TwisterMc/JobTwister/internal/services"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) List(c *gin.Context) {
	opts := store.ListOptions{
		Search:    c.Query("q"),
		SortBy:    c.Query("sort"),
		Ascending: c.Query("order") == "asc",
	}
	if v := c.Query("denied"); v != "" {
		denied := v == "true"
		opts.Denied = &denied
	}
	if v := c.Query("workplace"); v != "" {
		opts.WorkplaceType = models.ParseWorkplaceType(v)
	}

	jobs, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req services.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}
	job, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req services.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}
	job, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type InterviewRequest struct {
	Date  time.Time `json:"date" binding:"required"`
	Notes string    `json:"notes"`
}

func (h *JobHandler) AddInterview(c *gin.Context) {
	var req InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.AddInterview", "invalid request body", err))
		return
	}
	job, err := h.svc.AddInterview(c.Request.Context(), c.Param("id"), req.Date, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateInterview(c *gin.Context) {
	var req InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.UpdateInterview", "invalid request body", err))
		return
	}
	job, err := h.svc.UpdateInterview(c.Request.Context(), c.Param("id"), c.Param("interview_id"), req.Date, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) RemoveInterview(c *gin.Context) {
	job, err := h.svc.RemoveInterview(c.Request.Context(), c.Param("id"), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Timeline serves the dashboard chart: per-day event counts over the
// requested window (defaults to the trailing 30 days).
func (h *JobHandler) Timeline(c *gin.Context) {
	const op = "JobHandler.Timeline"

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "from must be yyyy-mm-dd", err))
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "to must be yyyy-mm-dd", err))
			return
		}
		// include the whole end day
		to = t.AddDate(0, 0, 1).Add(-time.Second)
	}

	points, err := h.svc.Timeline(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
