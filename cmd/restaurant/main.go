package main

import (
	stdLog "log"
	"os"

	"github.com/Astemirdum/restaurant-service/restaurant/app"
	"github.com/Astemirdum/restaurant-service/restaurant/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig()

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("app.Run ", err)
	}
}
