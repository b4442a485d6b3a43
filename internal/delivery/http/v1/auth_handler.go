package v1

import (
	"net/http"

	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/internal/domain"
	"recruitflow-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, adminOnly gin.HandlerFunc, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := protected.Group("/auth")
	{
		auth.GET("/me", handler.Me)
	}

	users := protected.Group("/users")
	{
		users.POST("/recruiters", adminOnly, handler.CreateRecruiter)
	}
}

type CreateRecruiterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Me godoc
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// CreateRecruiter godoc
// @Summary      Create a recruiter account
// @Description  Provision a new RECRUITER-role user. Admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        recruiter  body  CreateRecruiterRequest  true  "Recruiter JSON"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /users/recruiters [post]
// @Security     BearerAuth
func (h *AuthHandler) CreateRecruiter(c *gin.Context) {
	var req CreateRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	user, err := h.authUC.CreateRecruiter(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Recruiter created", user)
}
