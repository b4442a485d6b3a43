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

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
	exportUC      domain.ExportUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, adminOnly, staffOnly, writeLimited gin.HandlerFunc, applicationUC domain.ApplicationUsecase, exportUC domain.ExportUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC, exportUC: exportUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", writeLimited, handler.Apply)
		applications.GET("", handler.List)
		applications.POST("/:id/withdraw", handler.Withdraw)

		applications.PATCH("/:id/stage", staffOnly, handler.AdvanceStage)
		applications.POST("/export", adminOnly, handler.Export)
	}
}

type ApplyRequest struct {
	JobID     int64                      `json:"job_id" binding:"required"`
	Candidate domain.CandidateSubmission `json:"candidate" binding:"required"`
	Channel   string                     `json:"channel"` // optional, e.g. LINKEDIN, REFERRAL
}

type AdvanceStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// Apply godoc
// @Summary      Submit an application
// @Description  Submit a candidate against an open job. The candidate is deduplicated globally by (email, phone).
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	actor := actorFrom(c)
	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), req.JobID, &req.Candidate, actor, req.Channel)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// List godoc
// @Summary      List applications
// @Description  List applications visible to the caller. Admins see everything; partners and users see their own submissions.
// @Tags         applications
// @Produce      json
// @Param        job_id  query  int     false  "Filter by job"
// @Param        stage   query  string  false  "Filter by pipeline stage"
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter domain.ApplicationFilter

	if raw := c.Query("job_id"); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.Validation("Invalid job_id"))
			return
		}
		filter.JobID = &jobID
	}
	if raw := c.Query("stage"); raw != "" {
		stage := domain.PipelineStage(strings.ToUpper(raw))
		if !stage.Valid() {
			c.Error(apperror.Validation("Invalid pipeline stage"))
			return
		}
		filter.Stage = &stage
	}

	apps, err := h.applicationUC.ListApplicationsFor(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// AdvanceStage godoc
// @Summary      Move an application to a pipeline stage
// @Description  Advance (or move back) an application. Milestone timestamps are recorded on first entry only. Admin and recruiter only.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path  int                  true  "Application ID"
// @Param        stage  body  AdvanceStageRequest  true  "Target stage"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/stage [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) AdvanceStage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid application ID"))
		return
	}

	var req AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	app, err := h.applicationUC.AdvanceStage(c.Request.Context(), id, domain.PipelineStage(strings.ToUpper(req.Stage)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application stage updated", app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Mark an application WITHDRAWN. The pipeline stage is left untouched.
// @Tags         applications
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid application ID"))
		return
	}

	app, err := h.applicationUC.Withdraw(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", app)
}

// Export godoc
// @Summary      Export applications
// @Description  Export the application list as Excel or CSV with selected columns. Admin only.
// @Tags         applications
// @Accept       json
// @Produce      application/octet-stream
// @Param        request  body  domain.ApplicationExportRequest  true  "Export configuration"
// @Success      200  {file}  binary
// @Failure      400  {object}  response.Response
// @Router       /applications/export [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	var req domain.ApplicationExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	data, filename, err := h.exportUC.ExportApplications(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(filename, ".csv") {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// actorFrom builds the authenticated actor from context values set by
// the auth middleware.
func actorFrom(c *gin.Context) domain.Actor {
	actor := domain.Actor{
		UserID: c.GetString(string(domain.KeyUserID)),
		Role:   c.GetString(string(domain.KeyUserRole)),
	}
	if v, ok := c.Get(string(domain.KeyPartnerID)); ok {
		if partnerID, ok := v.(int64); ok {
			actor.PartnerID = &partnerID
		}
	}
	return actor
}
