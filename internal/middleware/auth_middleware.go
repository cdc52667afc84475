package middleware

import (
	"github.com/gin-gonic/gin"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
)

// identityKey is the gin context key holding the ActingIdentity.
const identityKey = "actingIdentity"

// Authorize verifies the bearer token and admits only the given roles;
// an empty role set admits every authenticated user. A missing token is
// a 401; an invalid or expired token, or a role outside the set, is a
// 403. On success the decoded identity is stored on the request context
// for handlers to pass into services.
func Authorize(jwtService *auth.JWTService, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		tokenString, err := auth.ExtractBearerToken(header)
		if err != nil {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				HandleAPIError(c, apperrors.ErrTokenExpired)
			default:
				HandleAPIError(c, apperrors.ErrTokenInvalid)
			}
			c.Abort()
			return
		}

		if !claims.Role.In(roles...) {
			HandleAPIError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(identityKey, identity.FromClaims(claims))
		c.Next()
	}
}

// IdentityFromContext returns the ActingIdentity stored by Authorize.
func IdentityFromContext(c *gin.Context) (identity.ActingIdentity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return identity.ActingIdentity{}, false
	}
	actor, ok := v.(identity.ActingIdentity)
	return actor, ok
}
