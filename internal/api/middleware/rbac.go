package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}

// AdminOnly restricts a route to administrators.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
