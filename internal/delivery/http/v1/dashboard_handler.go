package v1

import (
	"net/http"

	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, adminOnly gin.HandlerFunc, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/admin", adminOnly, handler.Admin)
		dashboard.GET("/partner", handler.Partner)
		dashboard.GET("/user", handler.User)
		dashboard.GET("/recruiter", handler.Recruiter)
	}
}

// Admin godoc
// @Summary      Admin dashboard
// @Description  Global summary, pipeline occupancy, daily trends, distributions, leaderboards and conversion rates. Admin only.
// @Tags         dashboard
// @Produce      json
// @Param        range  query  string  false  "Window: 7d, 30d or 90d"  default(7d)
// @Success      200  {object}  response.Response
// @Router       /dashboard/admin [get]
// @Security     BearerAuth
func (h *DashboardHandler) Admin(c *gin.Context) {
	report, err := h.dashboardUC.GetAdminDashboard(c.Request.Context(), c.Query("range"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", report)
}

// Partner godoc
// @Summary      Partner dashboard
// @Description  The caller's own submission pipeline, trends and top jobs. Requires an approved partner profile.
// @Tags         dashboard
// @Produce      json
// @Param        range  query  string  false  "Window: 7d, 30d or 90d"  default(7d)
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /dashboard/partner [get]
// @Security     BearerAuth
func (h *DashboardHandler) Partner(c *gin.Context) {
	v, ok := c.Get(string(domain.KeyPartnerID))
	partnerID, cast := v.(int64)
	if !ok || !cast {
		c.Error(apperror.Forbidden("Approved partner profile required"))
		return
	}

	report, err := h.dashboardUC.GetPartnerDashboard(c.Request.Context(), partnerID, c.Query("range"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", report)
}

// User godoc
// @Summary      User dashboard
// @Tags         dashboard
// @Produce      json
// @Param        range  query  string  false  "Window: 7d, 30d or 90d"  default(7d)
// @Success      200  {object}  response.Response
// @Router       /dashboard/user [get]
// @Security     BearerAuth
func (h *DashboardHandler) User(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	report, err := h.dashboardUC.GetUserDashboard(c.Request.Context(), userID, c.Query("range"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", report)
}

// Recruiter godoc
// @Summary      Recruiter dashboard
// @Description  Candidates added, distinct jobs worked, hire rate and recent submissions. Recruiter only.
// @Tags         dashboard
// @Produce      json
// @Param        range  query  string  false  "Window: 7d, 30d or 90d"  default(7d)
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /dashboard/recruiter [get]
// @Security     BearerAuth
func (h *DashboardHandler) Recruiter(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Recruiter access required"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	report, err := h.dashboardUC.GetRecruiterDashboard(c.Request.Context(), userID, c.Query("range"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", report)
}
