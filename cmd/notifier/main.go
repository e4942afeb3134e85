package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"fintrack/config"
	"fintrack/database"
	"fintrack/queue"
	"fintrack/service"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "", "path to an external config file (optional)")
	flag.StringVar(&configFile, "c", "", "path to an external config file (shorthand)")
}

// The notifier consumes contact-message events from the queue and
// emails the owner. It is a separate process so a mail outage never
// slows down the API; failed sends are requeued by the broker.
func main() {
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := database.Init(cfg); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	notifier := service.NewContactNotifier(database.GetDB(), &cfg.Email)
	// refuse to start without working mail credentials instead of
	// failing on every message
	if err := notifier.ValidateConfig(); err != nil {
		log.Fatalf("mail configuration invalid: %v", err)
	}

	client, err := queue.NewClient(cfg.Queue.URL, cfg.Queue.Exchange, cfg.Queue.Queue)
	if err != nil {
		log.Fatalf("failed to connect to queue: %v", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeContactCreated(ctx, notifier.HandleEvent)
	})

	log.Printf("notifier started, consuming %q on %s", cfg.Queue.Queue, cfg.Queue.URL)

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Println("notifier shut down")
}
