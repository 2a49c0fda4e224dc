package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/configs"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/routes"
)

func main() {
	cfg := configs.LoadConfig()
	logger := logging.New("super-delivery", cfg.Debug)

	db, err := configs.Open(cfg)
	if err != nil {
		log.Fatalf("open database failed: %v", err)
	}
	if err := configs.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", map[string]any{"addr": addr})
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
