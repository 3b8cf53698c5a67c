package http

import (
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// TenantHeader carries the caller's tenant, resolved upstream by the auth
// layer. Every API route requires it.
const TenantHeader = "X-Tenant-ID"

const tenantContextKey = "tenant"

// TenantMiddleware extracts and validates the tenant header and stores the
// parsed TenantID on the request context.
func TenantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TenantHeader)
			if raw == "" {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Code:    http.StatusBadRequest,
					Message: "Missing " + TenantHeader + " header",
				})
			}

			tenantID, err := kernel.TenantIDFromString(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Code:    http.StatusBadRequest,
					Message: "Invalid " + TenantHeader + " header",
				})
			}

			c.Set(tenantContextKey, tenantID)
			return next(c)
		}
	}
}

// tenantFrom returns the TenantID stored by TenantMiddleware.
func tenantFrom(c echo.Context) (kernel.TenantID, bool) {
	tenantID, ok := c.Get(tenantContextKey).(kernel.TenantID)
	return tenantID, ok
}
