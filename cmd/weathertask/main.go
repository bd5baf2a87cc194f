package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	weathertaskcmd "github.com/louisbranch/weathertask/internal/cmd/weathertask"
)

func main() {
	cfg, err := weathertaskcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[WEATHERTASK] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := weathertaskcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
