package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/auth/scheme"
	"github.com/allisson/guardpost/internal/httputil"
)

// AuthenticationMiddleware authenticates requests through the scheme guard.
//
// The middleware:
// 1. Hands the request headers to the guard, which tries each configured
//    scheme in order
// 2. Stores the authenticated principal in the request context on success
// 3. Rejects the request with the guard's mapped failure otherwise, setting
//    WWW-Authenticate to the guard's challenge so callers know how to retry
//
// Error handling:
//   - Missing credential → 401 Unauthorized
//   - Malformed credential → 400 Bad Request
//   - Unknown principal, wrong secret, expired or tampered token → 401 Unauthorized
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(guard, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    principal, ok := GetPrincipal(c.Request.Context())
//	    ...
//	})
func AuthenticationMiddleware(guard *scheme.Guard, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := guard.Authenticate(c.Request.Context(), c.Request.Header)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			c.Header("WWW-Authenticate", guard.Challenge())
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AuthorizationMiddleware enforces an operation-level authorization check for
// authenticated principals.
//
// MUST be used after AuthenticationMiddleware. The policy decides whether the
// principal's claims permit the named operation (e.g. "articles:write");
// handlers behind this middleware can assume the check already passed.
//
// Error handling:
//   - No principal in context → 401 Unauthorized with the WWW-Authenticate
//     challenge (authentication middleware not run)
//   - Policy denies the operation → 403 Forbidden naming the operation
//
// Usage:
//
//	router.POST("/v1/articles",
//	    AuthenticationMiddleware(guard, logger),
//	    AuthorizationMiddleware(policy, "articles:write", guard.Challenge(), logger),
//	    handler)
func AuthorizationMiddleware(
	policy authDomain.Policy,
	operation string,
	challenge string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			c.Header("WWW-Authenticate", challenge)
			httputil.HandleErrorGin(c, authDomain.ErrMissingCredential, logger)
			c.Abort()
			return
		}

		if err := policy.Authorize(principal, operation); err != nil {
			logger.Debug("authorization failed: insufficient permissions",
				slog.String("principal_id", principal.ID),
				slog.String("operation", operation))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
