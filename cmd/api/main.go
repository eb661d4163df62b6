package main

import (
	"freework/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// @title           Freework API
// @version         1.0
// @description     Freelance marketplace backend (jobs, milestones, escrow payments) backed by DynamoDB.

// @host localhost:8001

// @BasePath  /

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	routes.Run()
}
