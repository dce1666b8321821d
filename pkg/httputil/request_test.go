package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryString(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/advocates?q=Cardiology", nil)
	assert.Equal(t, "Cardiology", ParseQueryString(req, "q", ""))
}

func TestParseQueryString_Default(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/advocates", nil)
	assert.Equal(t, "fallback", ParseQueryString(req, "q", "fallback"))
}

func TestParseQueryString_Encoded(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/advocates?q=%28212%29+555-1234", nil)
	assert.Equal(t, "(212) 555-1234", ParseQueryString(req, "q", ""))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.2")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
