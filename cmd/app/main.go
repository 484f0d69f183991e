package main

import (
	"log"

	"github.com/restobook/restaurant-backend/config"
	"github.com/restobook/restaurant-backend/internal/appServer"
)

func main() {

	viperInstance, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		log.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	appServer.NewServer(cfg)
}
