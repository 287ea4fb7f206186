// Package middleware provides authentication and sector-access middleware
// for the HTTP layer.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserIDKey is the gin context key for the authenticated user ID.
	ContextUserIDKey = "userID"
	// ContextSectorKey is the gin context key for the user's sector.
	ContextSectorKey = "sector"

	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
)

// AuthRequired returns middleware that validates JWT access tokens and
// stores the user's ID and sector on the request context.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errMissingToken)
			return
		}

		claims, err := parseAccessClaims(rawToken, cfg.JWTSecret)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		sectorRaw, _ := claims["sector"].(string)
		sector, ok := domain.ParseSector(sectorRaw)
		if !ok {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextSectorKey, sector)
		c.Next()
	}
}

// RequireSector returns middleware that allows only users belonging to one of
// the given sectors. It must run after AuthRequired.
func RequireSector(allowed ...domain.Sector) gin.HandlerFunc {
	return func(c *gin.Context) {
		sector, ok := SectorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied for your sector"})
			return
		}

		for _, candidate := range allowed {
			if candidate == sector {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied for your sector"})
	}
}

// UserIDFrom extracts the authenticated user ID from the gin context.
func UserIDFrom(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}

// SectorFrom extracts the authenticated user's sector from the gin context.
func SectorFrom(c *gin.Context) (domain.Sector, bool) {
	value, ok := c.Get(ContextSectorKey)
	if !ok {
		return "", false
	}
	sector, ok := value.(domain.Sector)
	return sector, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

func extractBearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	rawToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if rawToken == "" {
		return "", false
	}

	return rawToken, true
}

func parseAccessClaims(rawToken, secret string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New(errInvalidToken)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New(errInvalidToken)
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, errors.New(errInvalidToken)
	}

	return claims, nil
}
