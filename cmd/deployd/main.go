// Command deployd subscribes to published card drops and writes each
// rendered hero page into a static site directory, where the web server or
// CDN sync picks it up.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/nats-io/nats.go"

	"github.com/sporez/cardforge/engine/publish"
	"github.com/sporez/cardforge/pkg/natsutil"
)

func main() {
	var (
		natsURL = flag.String("nats", nats.DefaultURL, "NATS server URL")
		outDir  = flag.String("out", "public/pages", "directory for rendered drop pages")
	)
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Error("create output dir", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	nc, err := nats.Connect(*natsURL)
	if err != nil {
		log.Error("nats connect failed", "url", *natsURL, "error", err)
		os.Exit(1)
	}
	defer nc.Drain()

	sub, err := natsutil.Subscribe(nc, publish.Subject, func(_ context.Context, drop publish.Drop) {
		if drop.Slug == "" || drop.HTML == "" {
			log.Warn("incomplete drop skipped", "slug", drop.Slug)
			return
		}
		path := filepath.Join(*outDir, drop.Slug+".html")
		if err := os.WriteFile(path, []byte(drop.HTML), 0o644); err != nil {
			log.Error("write drop page", "path", path, "error", err)
			return
		}
		log.Info("drop deployed", "slug", drop.Slug, "path", path, "session", drop.Session)
	})
	if err != nil {
		log.Error("subscribe failed", "subject", publish.Subject, "error", err)
		os.Exit(1)
	}
	defer sub.Unsubscribe()

	log.Info("deployd listening", "subject", publish.Subject, "out", *outDir)
	<-ctx.Done()
	log.Info("shutdown signal received")
}
