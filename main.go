package main

import (
	"eamcetpro_backend/internal/app"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/pkg/configwatcher"
	"eamcetpro_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	watchConfig := flag.Bool("watch-config", false, "reload config on file change")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watchConfig {
		go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
			logger.Log.Info("Config reloaded")
			application.ApplyConfig(newCfg)
		})
	}

	application.Run()
}
