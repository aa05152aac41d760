package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"attendance/internal/employee"
)

// Resolver turns a token subject into a live employee record.
type Resolver interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
}

const identityKey = "currentEmployee"

// RequireEmployee enforces bearer JWT tokens signed with HS256 and resolves
// the subject to an employee. A token whose subject no longer exists is
// rejected the same as a bad signature: no handler runs without a resolved
// identity.
func RequireEmployee(signingKey, issuer string, resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		emp, err := resolver.Get(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, employee.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			}
			return
		}
		c.Set(identityKey, emp)
		c.Next()
	}
}

// CurrentEmployee returns the employee resolved by RequireEmployee.
func CurrentEmployee(c *gin.Context) (employee.Employee, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return employee.Employee{}, false
	}
	emp, ok := v.(employee.Employee)
	return emp, ok
}
