package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"store-manager/internal/auth"

	"github.com/gin-gonic/gin"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.MustGet("userID"),
			"role":    c.MustGet("role"),
		})
	})
	r.GET("/admin", AuthMiddleware(), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	// No header
	if w := get(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: expected 401 got %d", w.Code)
	}

	// Missing Bearer prefix
	if w := get(r, "/me", "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad scheme: expected 401 got %d", w.Code)
	}

	// Bogus token
	if w := get(r, "/me", "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401 got %d", w.Code)
	}

	// Valid token passes and exposes the claims
	token, err := auth.GenerateToken(9, "employee")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w := get(r, "/me", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200 got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter()

	employeeToken, err := auth.GenerateToken(9, "employee")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := get(r, "/admin", "Bearer "+employeeToken); w.Code != http.StatusForbidden {
		t.Errorf("employee on admin route: expected 403 got %d", w.Code)
	}

	adminToken, err := auth.GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := get(r, "/admin", "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: expected 200 got %d", w.Code)
	}
}
