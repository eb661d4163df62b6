package routes

import (
	"freework/internal/adapter/http/handlers"
	"freework/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func addUserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler, projectHandler *handlers.ProjectHandler, jwtSecret string) {
	rg.POST("/register", userHandler.Register)
	rg.POST("/user/login", userHandler.Login)
	rg.POST("/verify-otp", userHandler.VerifyOTP)

	rg.GET("/profile", middleware.JWTAuthMiddleware(jwtSecret), userHandler.Profile)

	rg.POST("/create/project", projectHandler.CreateProject)
	rg.GET("/jobs", projectHandler.GetJobs)
	rg.GET("/job/:id", projectHandler.GetJob)
}
