package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"minimart/checkout"
	"minimart/config"
	"minimart/db"
	"minimart/logging"
	"minimart/routes"
	"minimart/store"
)

func main() {
	cfg := config.Load()

	log := logging.New(cfg.Env, cfg.LogFile)
	defer log.Sync()

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	if _, err := os.Stat(cfg.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
			log.Fatal("create upload directory failed", zap.Error(err))
		}
	}

	catalog := store.NewCatalog(gdb)
	users := store.NewUsers(gdb)
	engine := checkout.NewEngine(catalog, log)

	hub := routes.NewHub(log)
	go hub.Run()

	app := fiber.New()

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Serve uploaded images
	app.Static("/api/v1/uploads", "./"+cfg.UploadDir)

	routes.SetupRoutes(app, &routes.API{
		Catalog: catalog,
		Users:   users,
		Engine:  engine,
		Hub:     hub,
		Cfg:     cfg,
		Log:     log,
	})

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
