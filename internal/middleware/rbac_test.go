package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

func rbacRouter(mw gin.HandlerFunc, claims *service.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if claims != nil {
				c.Set(ContextKeyClaims, claims)
			}
			c.Next()
		},
		mw,
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func hitGuarded(t *testing.T, r *gin.Engine) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireModule(t *testing.T) {
	tests := []struct {
		name   string
		claims *service.Claims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{
			"admin bypasses grants",
			&service.Claims{Role: string(model.StaffRoleAdmin)},
			http.StatusOK,
		},
		{
			"teacher with the grant",
			&service.Claims{Role: string(model.StaffRoleTeacher), Modules: []string{model.ModuleExams}},
			http.StatusOK,
		},
		{
			"teacher without the grant",
			&service.Claims{Role: string(model.StaffRoleTeacher), Modules: []string{model.ModuleResults}},
			http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rbacRouter(RequireModule(model.ModuleExams), tt.claims)
			if got := hitGuarded(t, r); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		claims *service.Claims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"admin", &service.Claims{Role: string(model.StaffRoleAdmin)}, http.StatusOK},
		{
			"teacher rejected even with every grant",
			&service.Claims{
				Role:    string(model.StaffRoleTeacher),
				Modules: []string{model.ModuleExams, model.ModuleResults, model.ModuleRoster},
			},
			http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rbacRouter(RequireAdmin(), tt.claims)
			if got := hitGuarded(t, r); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
