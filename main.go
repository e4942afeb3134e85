package main

import (
	"flag"
	"log"
	"strings"

	"fintrack/api"
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/queue"
	"fintrack/router"
	"fintrack/service"

	"github.com/joho/godotenv"
)

// @title Fintrack API
// @version 1.0
// @description Personal finance tracker: transactions, savings goals, subscriptions, and dashboard aggregates.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "path to an external config file (optional)")
	flag.StringVar(&configFile, "c", "", "path to an external config file (shorthand)")
	flag.StringVar(&port, "port", "", "listen port, e.g. 8080 or :8080")
	flag.StringVar(&port, "p", "", "listen port (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&showVersion, "v", false, "print version (shorthand)")
}

// contactPublisher keeps a nil *queue.Client from becoming a non-nil
// interface value.
func contactPublisher(c *queue.Client) api.ContactPublisher {
	if c == nil {
		return nil
	}
	return c
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("fintrack v1.0.0")
		return
	}

	// optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("port overridden from command line: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	middleware.InitJWT(cfg)

	storage := service.NewStorage(&cfg.Storage)
	budgets := service.NewBudgetStore()

	// the queue feeds the notifier worker; the API still runs without
	// it, contact messages are just stored silently
	var publisher *queue.Client
	if cfg.Queue.URL != "" {
		publisher, err = queue.NewClient(cfg.Queue.URL, cfg.Queue.Exchange, cfg.Queue.Queue)
		if err != nil {
			log.Printf("queue unavailable, contact notifications disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	r := router.SetupRouter(cfg, storage, budgets, contactPublisher(publisher))

	log.Printf("==========================================")
	log.Printf("  fintrack started")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API:      http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
