package v1

import (
	"net/http"
	"strconv"
	"strings"

	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, adminOnly, staffOnly gin.HandlerFunc, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)

		jobs.POST("", staffOnly, handler.Create)
		jobs.PATCH("/:id/status", staffOnly, handler.UpdateStatus)
		jobs.POST("/:id/recount", adminOnly, handler.Recount)
	}
}

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description"`
	SalaryMin   *int64 `json:"salary_min"`
	SalaryMax   *int64 `json:"salary_max"`
	Status      string `json:"status"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create godoc
// @Summary      Create a job
// @Description  Create a new job posting (admin and recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	job := &domain.Job{
		Title:       req.Title,
		CompanyName: req.CompanyName,
		Department:  toPtr(req.Department),
		Location:    toPtr(req.Location),
		Description: toPtr(req.Description),
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Status:      strings.ToUpper(req.Status),
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job ID"))
		return
	}

	job, err := h.jobUC.GetJobDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// UpdateStatus godoc
// @Summary      Update job status
// @Description  Set a job's status (OPEN, CLOSED, ON_HOLD, CANCELLED). Admin and recruiter only.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path  int                     true  "Job ID"
// @Param        status  body  UpdateJobStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job ID"))
		return
	}

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	job, err := h.jobUC.UpdateJobStatus(c.Request.Context(), id, strings.ToUpper(req.Status))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job status updated", job)
}

// Recount godoc
// @Summary      Repair a job's application counter
// @Description  Recompute applications_count from the applications table. Admin only.
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/recount [post]
// @Security     BearerAuth
func (h *JobHandler) Recount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job ID"))
		return
	}

	count, err := h.jobUC.RecountApplications(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications count repaired", gin.H{
		"job_id":             id,
		"applications_count": count,
	})
}
