// Package auth provides HTTP basic authentication for the webhook and the
// admin API. The webhook caller and admins use distinct secrets.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Credentials is a username/secret pair checked in constant time.
type Credentials struct {
	Username string
	Password string
}

// Match compares the given pair against the stored one without leaking
// timing information.
func (c Credentials) Match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// BasicAuth rejects requests whose basic-auth pair does not match the given
// credentials.
func BasicAuth(creds Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !creds.Match(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="restricted"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authentication credentials",
			})
			return
		}
		c.Next()
	}
}
