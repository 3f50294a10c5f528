// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"tarifario/internal/core/apperror"
	appctx "tarifario/internal/core/context"
)

// Permission strings follow the resource:action scheme the routers use,
// e.g. "catalog:price_list:update" or "pricing:authorize". Admins pass
// every check.

// RequirePermission allows the request only when the user holds the
// given permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if user.IsAdmin {
			c.Next()
			return
		}

		if !userPermissionSet(c)[permission] {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("required_permission", permission),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyPermission allows the request when the user holds at least
// one of the given permissions. Used where a broader permission implies
// a narrower one, e.g. pricing:write implying pricing:read.
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if user.IsAdmin {
			c.Next()
			return
		}

		held := userPermissionSet(c)
		for _, required := range permissions {
			if held[required] {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_permissions", permissions),
		)
		c.Abort()
	}
}

// RequireAllPermissions allows the request only when the user holds
// every given permission.
func RequireAllPermissions(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if user.IsAdmin {
			c.Next()
			return
		}

		held := userPermissionSet(c)
		var missing []string
		for _, required := range permissions {
			if !held[required] {
				missing = append(missing, required)
			}
		}

		if len(missing) > 0 {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("missing_permissions", missing),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

// userPermissionSet returns the permissions the Auth middleware stored
// in the gin context, as a lookup set.
func userPermissionSet(c *gin.Context) map[string]bool {
	perms, exists := c.Get("permissions")
	if !exists {
		return nil
	}
	list, ok := perms.([]string)
	if !ok {
		return nil
	}
	set := make(map[string]bool, len(list))
	for _, p := range list {
		set[p] = true
	}
	return set
}
