package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/deskhive/helpdesk-api/pkg/helpers"
	"github.com/deskhive/helpdesk-api/pkg/response"
)

// Auth validates the access token cookie and ensures an active session
// exists in Redis. It sets userID and userRole in the Gin context on
// success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.CodeSessionInvalid, "missing access token", "middleware.Auth")
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.CodeSessionInvalid, "invalid access token", "middleware.Auth")
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.UserID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 {
				response.AbortFail(c, http.StatusUnauthorized, response.CodeSessionInvalid, "session not found", "middleware.Auth")
				return
			}
			if sid, ok := data["sid"]; ok && sid != claims.SessionID {
				response.AbortFail(c, http.StatusUnauthorized, response.CodeSessionInvalid, "session superseded", "middleware.Auth")
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// RequireRoles rejects the request unless the authenticated role is one of
// the allowed set. Must run after Auth.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if _, ok := set[role]; !ok {
			response.AbortFail(c, http.StatusForbidden, response.CodePermissionDenied, "insufficient role", "middleware.RequireRoles")
			return
		}
		c.Next()
	}
}
