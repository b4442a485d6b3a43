package v1

import (
	"net/http"
	"strconv"

	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PartnerHandler struct {
	partnerUC domain.PartnerUsecase
}

func NewPartnerHandler(protected *gin.RouterGroup, adminOnly gin.HandlerFunc, partnerUC domain.PartnerUsecase) {
	handler := &PartnerHandler{partnerUC: partnerUC}

	partners := protected.Group("/partners")
	{
		partners.POST("/request", handler.Request)
		partners.GET("/me", handler.Me)

		partners.GET("/pending", adminOnly, handler.ListPending)
		partners.POST("/:id/approve", adminOnly, handler.Approve)
		partners.POST("/:id/reject", adminOnly, handler.Reject)
	}
}

type PartnershipRequest struct {
	OrganisationName string `json:"organisation_name" binding:"required"`
	Phone            string `json:"phone"`
}

// Request godoc
// @Summary      Request partnership
// @Description  File a partnership request. The request stays PENDING until an admin decides.
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request  body  PartnershipRequest  true  "Partnership request"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /partners/request [post]
// @Security     BearerAuth
func (h *PartnerHandler) Request(c *gin.Context) {
	var req PartnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	partner, err := h.partnerUC.RequestPartnership(c.Request.Context(), userID, req.OrganisationName, req.Phone)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Partnership requested", partner)
}

// Me godoc
// @Summary      Get own partner profile
// @Tags         partners
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /partners/me [get]
// @Security     BearerAuth
func (h *PartnerHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	partner, err := h.partnerUC.GetPartnerForUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Partner profile retrieved", partner)
}

// ListPending godoc
// @Summary      List pending partnership requests
// @Tags         partners
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /partners/pending [get]
// @Security     BearerAuth
func (h *PartnerHandler) ListPending(c *gin.Context) {
	partners, err := h.partnerUC.ListPendingRequests(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Pending requests retrieved", partners)
}

// Approve godoc
// @Summary      Approve a partnership request
// @Description  Approve a pending request. Approval also promotes the owning user to the PARTNER role.
// @Tags         partners
// @Produce      json
// @Param        id  path  int  true  "Partner ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /partners/{id}/approve [post]
// @Security     BearerAuth
func (h *PartnerHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid partner ID"))
		return
	}

	partner, err := h.partnerUC.ApprovePartner(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Partner approved", partner)
}

// Reject godoc
// @Summary      Reject a partnership request
// @Tags         partners
// @Produce      json
// @Param        id  path  int  true  "Partner ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /partners/{id}/reject [post]
// @Security     BearerAuth
func (h *PartnerHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid partner ID"))
		return
	}

	partner, err := h.partnerUC.RejectPartner(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Partner rejected", partner)
}
