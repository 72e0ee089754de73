package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/project-tracker/internal/api/http"
	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/response"
	"github.com/GoSim-25-26J-441/project-tracker/internal/metrics"
	projecthttp "github.com/GoSim-25-26J-441/project-tracker/internal/projects/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	DB          httpapi.Pinger
	Projects    projecthttp.ProjectService

	CORSAllowOrigins []string
	RateLimitRPS     float64
	RateLimitBurst   int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(corsMiddleware(dep.CORSAllowOrigins))
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(middleware.Metrics())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if dep.Logger != nil {
			dep.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		}
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	projectsGroup := r.Group("/projects")
	projectsGroup.Use(middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	projecthttp.New(dep.Projects).Register(projectsGroup)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "route not found")
	})

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
