package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/api/handler"
	"github.com/Freeeeeet/gym_scheduler/internal/api/middleware"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
)

// Setup создаёт gin engine со всеми маршрутами API
func Setup(h *handler.Handler, tokens middleware.TokenParser, production bool, logger *zap.Logger) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	trainerRoles := []string{string(model.RoleTrainer), string(model.RoleAdmin)}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(tokens))
	{
		v1.GET("/me", h.User.Me)
		v1.POST("/slots/preview", h.Slots.Preview)

		trainer := v1.Group("")
		trainer.Use(middleware.RoleAuth(trainerRoles...))
		{
			trainer.GET("/week-config", h.WeekConfig.GetWeekConfig)
			trainer.PUT("/week-config", h.WeekConfig.PutWeekConfig)
			trainer.GET("/sessions", h.Sessions.ListSessions)
		}

		studio := v1.Group("/studio")
		studio.Use(middleware.RoleAuth(string(model.RoleAdmin)))
		{
			studio.GET("/sessions", h.Sessions.ListStudioSessions)
		}
	}

	return r
}
