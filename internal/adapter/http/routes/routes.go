package routes

import (
	"context"
	"os"

	_ "freework/docs" // swag-generated
	"freework/internal/adapter/http/handlers"
	"freework/internal/adapter/persistence/repository"
	"freework/internal/infrastructure/database"
	"freework/internal/infrastructure/mail"
	"freework/internal/infrastructure/otp"
	"freework/internal/infrastructure/payments"
	"freework/internal/usecase"
	"freework/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = "8001"

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	userRepo := repository.NewUserDynamoRepository(ddb)
	projectRepo := repository.NewProjectDynamoRepository(ddb)
	milestoneRepo := repository.NewMilestoneDynamoRepository(ddb)

	rdb := redis.NewClient(&redis.Options{
		Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASS"),
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	mailer := mail.NewSMTPSender(
		getenvDefault("SMTP_HOST", "smtp.gmail.com"),
		getenvDefault("SMTP_PORT", "587"),
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	var gateway interfaces.IPaymentGateway
	cfGateway, err := payments.NewCashfreeGateway(os.Getenv("CASHFREE_CLIENT_ID"), os.Getenv("CASHFREE_CLIENT_SECRET"))
	if err != nil {
		logrus.Warnf("Cashfree gateway not configured: %v", err)
	} else {
		gateway = cfGateway
	}

	userUseCase := usecase.NewUserUseCase(userRepo, otp.NewRedisStore(rdb), mailer)
	projectUseCase := usecase.NewProjectUseCase(projectRepo)
	milestoneUseCase := usecase.NewMilestoneUseCase(milestoneRepo, userRepo)
	paymentUseCase := usecase.NewPaymentUseCase(milestoneRepo, userRepo, gateway)

	jwtSecret := os.Getenv("JWT_SECRET")
	secureCookies := os.Getenv("GIN_MODE") == "release"

	userHandler := handlers.NewUserHandler(userUseCase, jwtSecret, secureCookies)
	projectHandler := handlers.NewProjectHandler(projectUseCase)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, milestoneUseCase)

	addPingRoutes(router.Group(""))
	addUserRoutes(router.Group(""), userHandler, projectHandler, jwtSecret)
	addFreeworkRoutes(router.Group("/freework"), milestoneHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.Errorf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
