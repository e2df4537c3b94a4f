package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestIDFor(t *testing.T, inbound string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set("X-Request-ID", inbound)
	}
	r.ServeHTTP(w, req)
	return w.Header().Get("X-Request-ID")
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an ID when none is sent", func(t *testing.T) {
		got := requestIDFor(t, "")
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("response carried %q, want a generated UUID", got)
		}
	})

	t.Run("echoes a well-formed client ID", func(t *testing.T) {
		inbound := uuid.New().String()
		if got := requestIDFor(t, inbound); got != inbound {
			t.Errorf("got %q, want the inbound %q", got, inbound)
		}
	})

	t.Run("replaces a malformed client ID", func(t *testing.T) {
		got := requestIDFor(t, "not-a-uuid")
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("response carried %q, want a replacement UUID", got)
		}
	})
}
