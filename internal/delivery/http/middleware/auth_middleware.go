package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-jobtracker-backend/config"
	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/auth"
	"go-jobtracker-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Supabase-issued bearer token (HS256 via shared
// secret, RS256 via JWKS) and exposes the caller's identity and raw
// credential to the handlers. Identity is taken from the token; there is no
// local user table.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// Cookie fallback for browser clients
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			logUnauthorized(c, "missing_token")
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logUnauthorized(c, "invalid_token")
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			logUnauthorized(c, "invalid_claims")
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			logUnauthorized(c, "missing_subject")
			response.Error(c, http.StatusUnauthorized, "Invalid token subject", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyCredential), tokenString)

		c.Next()
	}
}

func logUnauthorized(c *gin.Context, reason string) {
	requestID, _ := c.Get("RequestID")
	reqIDStr, _ := requestID.(string)
	security.DefaultLogger().LogUnauthorized(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		reqIDStr,
		reason,
	)
}
