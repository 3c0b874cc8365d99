package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/flightbook/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "identity"

// RequireAuth validates the bearer token from the Authorization header and
// stores the verified identity in the request context. The token is taken
// as everything after the first space of the header value.
func RequireAuth(verifier auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, raw, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || raw == "" {
			writeError(c, http.StatusUnauthorized, "No token provided", nil)
			c.Abort()
			return
		}

		identity, err := verifier.VerifyToken(raw)
		if err != nil {
			writeError(c, http.StatusUnauthorized, "Token invalid", nil)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole rejects callers whose verified identity does not carry the
// given role. It must be registered after RequireAuth; a request that
// somehow reaches it without an identity is refused, not trusted.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			writeError(c, http.StatusUnauthorized, "No token provided", nil)
			c.Abort()
			return
		}
		if identity.Role != role {
			writeError(c, http.StatusForbidden, "Access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

// RequestID tags every request with a unique id, either the caller's
// X-Request-ID or a fresh uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs one line per completed request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get("request_id")
		log.Printf("%s %s %d %s request_id=%v",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestID)
	}
}
