package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/access"
	"github.com/perditionlabs/recruitd/internal/database"
	apierrors "github.com/perditionlabs/recruitd/internal/errors"
	"github.com/perditionlabs/recruitd/internal/models"
)

const contextKeyAccessCheck = "access_check"

// RequireResourceLevel resolves the caller's permission over the resource
// named by the :id parameter and requires the given admin level. The denial
// response is a bare 403 either way, so callers cannot probe which resources
// exist.
func RequireResourceLevel(kind access.ResourceKind, level models.AdminLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		check, ok := resolveParam(c, kind)
		if !ok {
			return
		}

		if err := check.AtLeast(level).Authorize(); err != nil {
			apierrors.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(contextKeyAccessCheck, check)
		c.Next()
	}
}

// ResolveResource resolves without deciding, for handlers that apply their
// own combinators (published overrides, applicant ownership).
func ResolveResource(c *gin.Context, kind access.ResourceKind) (access.Check, bool) {
	return resolveParam(c, kind)
}

// GetAccessCheck retrieves the check stored by RequireResourceLevel.
func GetAccessCheck(c *gin.Context) (access.Check, bool) {
	value, exists := c.Get(contextKeyAccessCheck)
	if !exists {
		return access.Denied(), false
	}
	check, ok := value.(access.Check)
	return check, ok
}

func resolveParam(c *gin.Context, kind access.ResourceKind) (access.Check, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		c.Abort()
		return access.Denied(), false
	}

	userID, exists := GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		c.Abort()
		return access.Denied(), false
	}

	resolver := access.NewResolver(database.GetDB())
	return resolver.Resolve(kind, id, userID), true
}
