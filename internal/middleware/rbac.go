package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/response"
)

// RequireModule checks that the staff JWT grants access to the given module.
// Admins pass unconditionally.
func RequireModule(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role == string(model.StaffRoleAdmin) {
			c.Next()
			return
		}

		for _, m := range claims.Modules {
			if m == module {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
	}
}

// RequireAdmin allows only staff with the admin role through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != string(model.StaffRoleAdmin) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
