package middleware

import (
	"net/http"

	"go-schooldocs/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorizer is a local interface: anything with an Enforce method over
// (role, resource, action) triples fits, so handlers can be tested with a
// plain fake.
type Authorizer interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role.(string), resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
