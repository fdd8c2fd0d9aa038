package main

import (
	"context"
	"fmt"
	"os"

	"mapup/internal/backend"
	"mapup/internal/config"
	"mapup/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	opts := optionsFromEnv(os.Args[1:])
	client := backend.NewHTTPClient(cfg.APIBaseURL, cfg.HTTPClientTimeout)

	log.Info(ctx, "starting seed", "backend", cfg.APIBaseURL, "files", len(opts.Files))
	res, err := seed(ctx, client, opts, log)
	if err != nil {
		log.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "seed completed",
		"admin_created", res.AdminCreated,
		"uploaded", res.Uploaded,
		"records", res.Records,
	)
}
