package main

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/internal/storage"
	"CloudVault/router"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	repo.InitTicketStore()
	storage.InitMinio()

	router := router.InitRouter()

	router.Run(":8000")
}
