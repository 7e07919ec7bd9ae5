package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCredentialsMatch(t *testing.T) {
	creds := Credentials{Username: "user", Password: "secret"}

	assert.True(t, creds.Match("user", "secret"))
	assert.False(t, creds.Match("user", "wrong"))
	assert.False(t, creds.Match("other", "secret"))
	assert.False(t, creds.Match("", ""))
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", BasicAuth(Credentials{Username: "user", Password: "secret"}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestBasicAuthAccepts(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("user", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBasicAuthRejects(t *testing.T) {
	r := protectedRouter()

	cases := []struct {
		name string
		set  func(*http.Request)
	}{
		{"no header", func(*http.Request) {}},
		{"bad password", func(req *http.Request) { req.SetBasicAuth("user", "nope") }},
		{"bad username", func(req *http.Request) { req.SetBasicAuth("nope", "secret") }},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		tc.set(req)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.name)
		assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic", tc.name)
	}
}
