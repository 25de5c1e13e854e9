package main

import (
	"context"
	"courier-tracking-service/internal/app"
	"courier-tracking-service/internal/config"
	"courier-tracking-service/internal/poller"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// monitor polls the tracking service in-process, the way a map UI would, and
// logs every accepted update.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, time.Now())
	if err != nil {
		log.Fatal(app.StartupError(err))
	}
	defer a.Close()

	p := poller.New(a.Service, cfg.Delays())
	updates, unsubscribe := p.Subscribe(32)
	defer unsubscribe()

	go func() {
		for u := range updates {
			logUpdate(u)
		}
	}()

	log.Printf("Monitoring scenario=%s source=%s", a.Scenario.Current().Name, app.Describe(cfg))
	if err := p.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

func logUpdate(u poller.Update) {
	switch u.Kind {
	case poller.KindConfiguration:
		d := u.Configuration.Delays
		log.Printf("seq=%d configuration delays=%s/%s/%s central=%s",
			u.Seq, d.Configuration, d.Map, d.Path, u.Configuration.Central.Key())
	case poller.KindState:
		busy := 0
		for _, c := range u.State.Couriers {
			if !c.Idle {
				busy++
			}
		}
		log.Printf("seq=%d state tick=%d couriers=%d busy=%d packages=%d vehicles=%d",
			u.Seq, u.State.Tick, len(u.State.Couriers), busy, len(u.State.Packages), len(u.State.Vehicles))
	case poller.KindPaths:
		for _, path := range u.Paths {
			log.Printf("seq=%d path courier=%s purpose=%s dist=%dm eta=%ds",
				u.Seq, path.CourierID, path.Purpose, path.DistanceMeters, path.DurationSeconds)
		}
	}
}
