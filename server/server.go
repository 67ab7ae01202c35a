// Package server wires the HTTP surface: route registration, request
// decoding and the mapping from domain errors to status codes.
package server

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gymunity/backend/auth"
	"github.com/gymunity/backend/news"
	"github.com/gymunity/backend/server/middlewares"
	"github.com/gymunity/backend/utils"
	. "github.com/gymunity/backend/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Server struct {
	db   *gorm.DB
	news *news.Service
	auth auth.Config
}

func New(db *gorm.DB, newsService *news.Service, authConfig auth.Config) *Server {
	return &Server{db: db, news: newsService, auth: authConfig}
}

// Router builds the gin engine with every route attached.
func (s *Server) Router() *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(middlewares.RequestId())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ai/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "GymUnity AI"})
	})

	router.POST("/auth/register", s.register)
	router.POST("/auth/login", s.login)

	authed := router.Group("", middlewares.JWT(s.db, s.auth))

	authed.POST("/ai/chat", s.aiChat)

	newsRoutes := authed.Group("/news")
	newsRoutes.GET("/sources", s.listSources)
	newsRoutes.GET("/preferences", s.getPreferences)
	newsRoutes.POST("/preferences", s.updatePreferences)
	newsRoutes.GET("/feed", s.getFeed)
	newsRoutes.GET("/explore", s.getExplore)
	newsRoutes.GET("/saved", s.getSaved)
	newsRoutes.GET("/articles/:id", s.getArticle)
	newsRoutes.POST("/articles/:id/save", s.saveArticle)
	newsRoutes.DELETE("/articles/:id/save", s.unsaveArticle)
	newsRoutes.POST("/articles/:id/hide", s.hideArticle)
	newsRoutes.POST("/chat", s.newsChat)

	adminRoutes := authed.Group("/admin/news", middlewares.RequireRole("admin"))
	adminRoutes.GET("/sources", s.adminListSources)
	adminRoutes.POST("/sources", s.adminCreateSource)
	adminRoutes.PUT("/sources/:id", s.adminUpdateSource)
	adminRoutes.PATCH("/sources/:id/toggle", s.adminToggleSource)
	adminRoutes.DELETE("/sources/:id", s.adminDeleteSource)
	adminRoutes.POST("/fetch-now", s.adminFetchNow)
	adminRoutes.GET("/status", s.adminStatus)

	return router
}

// corsMiddleware allows the origins listed in CORS_ORIGINS, or everything
// when the variable is unset (development).
func corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.AllowOrigins = utils.SplitCSV(origins)
		config.AllowCredentials = true
	} else {
		config.AllowAllOrigins = true
	}
	config.AddAllowHeaders("Authorization")
	return cors.New(config)
}

// abortWithDomainError translates a service error into the caller-facing
// status code. Anything unclassified is a 500 with the reason kept out of
// the response.
func abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, news.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, news.ErrDuplicateRssUrl):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		Log.Error("request failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// pathId parses the numeric :id path segment. A non-numeric id can never
// match a row, so callers treat the error as not-found.
func pathId(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
