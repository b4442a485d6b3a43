package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"recruitflow-backend/config"
	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and loads the user from the
// database. The role always comes from the DB, never from the token: a
// stale claim must not keep elevated access after a role change.
func AuthMiddleware(cfg *config.Config, authUC domain.AuthUsecase, partnerUC domain.PartnerUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		// Fetch fresh user data from DB to get the correct Role.
		user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), user.Role)

		// Partners carry their approved partner id so handlers can build
		// a fully resolved actor without another lookup.
		if user.Role == domain.RolePartner {
			partner, err := partnerUC.GetPartnerForUser(c.Request.Context(), user.ID)
			if err == nil && partner.Status == domain.PartnerStatusApproved {
				c.Set(string(domain.KeyPartnerID), partner.ID)
			}
		}

		c.Next()
	}
}
