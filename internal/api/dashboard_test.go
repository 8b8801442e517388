package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matiasmdev/chef-claude/config"
	"github.com/Matiasmdev/chef-claude/internal/middleware"
	"github.com/Matiasmdev/chef-claude/internal/service"
)

type dashboardFixture struct {
	router  *gin.Engine
	mr      *miniredis.Miniredis
	limiter *middleware.RateLimiter
	logs    *service.UsageLog
}

func setupDashboardRouter(t *testing.T) *dashboardFixture {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{FrontendSecretKey: testSecret}
	logger, _ := logrustest.NewNullLogger()

	limiter := middleware.NewRecipeGenerationRateLimiter(client)
	logs := service.NewUsageLog(client)

	handler := NewDashboardHandler(cfg, limiter, logs, logger)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))

	return &dashboardFixture{router: router, mr: mr, limiter: limiter, logs: logs}
}

func getDashboard(router *gin.Engine, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	if secret != "" {
		req.Header.Set(middleware.SecretHeader, secret)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDashboardSnapshot(t *testing.T) {
	f := setupDashboardRouter(t)
	ctx := context.Background()

	require.NoError(t, f.logs.Append(ctx, "u1", []string{"huevo"}))
	require.NoError(t, f.logs.Append(ctx, "u1", []string{"harina"}))
	require.NoError(t, f.logs.Append(ctx, "u2", []string{"papa"}))

	_, _, err := f.limiter.Reserve(ctx, "u1")
	require.NoError(t, err)
	_, _, err = f.limiter.Reserve(ctx, "u1")
	require.NoError(t, err)

	w := getDashboard(f.router, testSecret)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard map[string]DashboardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	require.Len(t, dashboard, 2)

	u1 := dashboard["u1"]
	assert.Equal(t, 2, u1.TotalGeneradas)
	require.Len(t, u1.UltimasRecetas, 2)
	assert.Equal(t, []string{"harina"}, u1.UltimasRecetas[0].Ingredients)

	// u2 logged usage but has no counter: defaults to zero.
	u2 := dashboard["u2"]
	assert.Equal(t, 0, u2.TotalGeneradas)
	require.Len(t, u2.UltimasRecetas, 1)
}

func TestDashboardEmptyStore(t *testing.T) {
	f := setupDashboardRouter(t)

	w := getDashboard(f.router, testSecret)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestDashboardUnauthorized(t *testing.T) {
	f := setupDashboardRouter(t)

	for _, secret := range []string{"", "wrong"} {
		w := getDashboard(f.router, secret)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}
}

func TestDashboardCountsUndecodableEntries(t *testing.T) {
	f := setupDashboardRouter(t)
	ctx := context.Background()

	require.NoError(t, f.logs.Append(ctx, "u1", []string{"huevo"}))
	_, err := f.mr.Lpush("log:u1", "corrupt")
	require.NoError(t, err)

	w := getDashboard(f.router, testSecret)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard map[string]DashboardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))

	u1 := dashboard["u1"]
	assert.Len(t, u1.UltimasRecetas, 1)
	assert.Equal(t, 1, u1.EntradasInvalidas)
}

func TestDashboardStoreDown(t *testing.T) {
	f := setupDashboardRouter(t)
	f.mr.Close()

	w := getDashboard(f.router, testSecret)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error desconocido"}`, w.Body.String())
}
