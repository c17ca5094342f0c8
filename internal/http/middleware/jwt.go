package middleware

import (
	"net/http"
	"strings"

	"projectmanager/internal/http/apierr"
	"projectmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

// ContextUserEmailKey holds the verified token subject.
const ContextUserEmailKey = "user_email"

// TokenVerifier is implemented by service.TokenIssuer.
type TokenVerifier interface {
	Subject(token string) (string, error)
}

// JWT establishes the request identity from a bearer token. Requests without a
// usable token continue anonymously; RequireAuth rejects them later.
func JWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		subject, err := verifier.Subject(token)
		if err != nil {
			logger.WithContext(c.Request.Context()).Debug("bearer token rejected", "error", err)
			c.Next()
			return
		}

		c.Set(ContextUserEmailKey, subject)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless JWT stored a subject.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Subject(c); !ok {
			apierr.Abort(c, http.StatusUnauthorized, "Unauthorized - token missing or invalid")
			return
		}
		c.Next()
	}
}

// Subject returns the authenticated subject, if any.
func Subject(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserEmailKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	// some clients paste the token with its JSON quotes
	if len(token) > 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		token = token[1 : len(token)-1]
	}
	return token, token != ""
}
