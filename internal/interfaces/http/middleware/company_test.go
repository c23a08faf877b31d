package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCompanyScope(t *testing.T) {
	t.Run("rejects missing company header", func(t *testing.T) {
		router := gin.New()
		router.Use(CompanyScope())
		router.GET("/api/v1/thing", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects malformed company header", func(t *testing.T) {
		router := gin.New()
		router.Use(CompanyScope())
		router.GET("/api/v1/thing", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
		req.Header.Set(CompanyHeaderKey, "not-a-uuid")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("binds scoped tenant context onto the request", func(t *testing.T) {
		companyID := uuid.New()
		var gotTC tenant.Context
		var gotOK bool

		router := gin.New()
		router.Use(CompanyScope())
		router.GET("/api/v1/thing", func(c *gin.Context) {
			gotTC, gotOK = tenant.From(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
		req.Header.Set(CompanyHeaderKey, companyID.String())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, gotOK)
		require.True(t, gotTC.IsScoped())
		scopedID, _ := gotTC.CompanyID()
		assert.Equal(t, companyID, scopedID)
	})

	t.Run("captures actor header when present", func(t *testing.T) {
		companyID := uuid.New()
		actorID := uuid.New()
		var gotActor string

		router := gin.New()
		router.Use(CompanyScope())
		router.GET("/api/v1/thing", func(c *gin.Context) {
			gotActor = c.GetString(ActorIDKey)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
		req.Header.Set(CompanyHeaderKey, companyID.String())
		req.Header.Set(ActorHeaderKey, actorID.String())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, actorID.String(), gotActor)
	})

	t.Run("skips configured paths", func(t *testing.T) {
		router := gin.New()
		router.Use(CompanyScope())
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("optional mode passes requests through without scope", func(t *testing.T) {
		cfg := DefaultCompanyScopeConfig()
		cfg.Required = false

		var gotOK bool
		router := gin.New()
		router.Use(CompanyScopeWithConfig(cfg))
		router.GET("/api/v1/thing", func(c *gin.Context) {
			_, gotOK = tenant.From(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, gotOK)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID when none supplied", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("echoes a client-supplied ID", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	})
}
