package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker/config"
)

func SetGinMode(cfg *config.Config) {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.App.Environment == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
