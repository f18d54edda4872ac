//go:build unit

package handler

import (
	"net/http"
	"testing"
	"time"

	"equipsched/internal/handler/middleware"
	"equipsched/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
)

func TestAddRoutesCachedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	store := cache.New(time.Minute, time.Minute)
	calls := 0
	addRoutes(engine.Group(""), []route{
		{
			Method: http.MethodGet,
			Path:   "/cached",
			Handler: func(c *gin.Context) {
				calls++
				c.JSON(http.StatusOK, gin.H{"payload": "real"})
			},
			Mw: []gin.HandlerFunc{middleware.Cache(store, time.Minute)},
		},
	})

	first := httptest.PerformRequest(t, engine, http.MethodGet, "/cached", nil, "")
	require.Equal(t, http.StatusOK, first.Code)
	require.JSONEq(t, `{"payload":"real"}`, first.Body.String())

	// Second hit must come from the cache with the same body, not an empty
	// response captured before the handler ran.
	second := httptest.PerformRequest(t, engine, http.MethodGet, "/cached", nil, "")
	require.Equal(t, http.StatusOK, second.Code)
	require.JSONEq(t, `{"payload":"real"}`, second.Body.String())
	require.Equal(t, 1, calls)
}

func TestAddRoutesAbortingMiddlewareBlocksHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	called := false
	addRoutes(engine.Group(""), []route{
		{
			Method: http.MethodGet,
			Path:   "/gated",
			Handler: func(c *gin.Context) {
				called = true
				c.Status(http.StatusOK)
			},
			Mw: []gin.HandlerFunc{func(c *gin.Context) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Insufficient permissions"}})
			}},
		},
	})

	w := httptest.PerformRequest(t, engine, http.MethodGet, "/gated", nil, "")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.False(t, called)
}
