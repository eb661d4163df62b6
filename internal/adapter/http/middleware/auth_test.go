package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"freework/internal/domain/entities"
	"freework/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetString("userID"),
			"userRole": c.GetString("userRole"),
		})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		r := protectedRouter("secret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		r := protectedRouter("secret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		r := protectedRouter("secret")

		token, err := auth.GenerateJWT(entities.User{ID: "u-1"}, "other")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token exposes the caller identity", func(t *testing.T) {
		r := protectedRouter("secret")

		token, err := auth.GenerateJWT(entities.User{ID: "u-1", Role: entities.RoleFreelancer}, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := w.Body.String(); !strings.Contains(body, `"userID":"u-1"`) || !strings.Contains(body, `"userRole":"freelancer"`) {
			t.Fatalf("unexpected body: %s", body)
		}
	})
}
