package main

import (
	stdlog "log"
	"strings"

	"github.com/benbeisheim/roulette-backend/internal/config"
	"github.com/benbeisheim/roulette-backend/internal/controller"
	"github.com/benbeisheim/roulette-backend/internal/random"
	"github.com/benbeisheim/roulette-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.Level())

	app := fiber.New(fiber.Config{
		AppName: "roulette-backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "X-Client-ID",
		AllowCredentials: true,
	}))

	// Initialize services
	tableManager := service.NewTableManager(cfg.Rules, random.New)
	tableService := service.NewTableService(tableManager, cfg.RevealDelay)

	controller.Register(app, tableService, splitOrigins(cfg.AllowOrigins))

	log.Infof("roulette tables playing %s rules, reveal delay %s", cfg.Rules, cfg.RevealDelay)
	stdlog.Fatal(app.Listen(cfg.Addr()))
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
