// Command track follows one order from the terminal the way a customer's tracking
// page does: it prints the progress every time it changes and exits once the order
// is delivered or cancelled.
//
//	track -url http://localhost:8080 -token "$TOKEN" -order 7a0e...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/tracking"

	"github.com/labstack/gommon/log"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "service base url")
	token := flag.String("token", os.Getenv("FOODORDER_TOKEN"), "bearer token, defaults to $FOODORDER_TOKEN")
	orderFlag := flag.String("order", "", "order id")
	poll := flag.Duration("poll", tracking.DefaultPollInterval, "snapshot polling interval")
	asJSON := flag.Bool("json", false, "print every view as a JSON line")
	verbose := flag.Bool("v", false, "log live channel activity to stderr")
	flag.Parse()

	orderID, err := kernel.UUIDFromString(*orderFlag)
	if err != nil {
		log.Fatalf("-order: %v", err)
	}
	if *token == "" {
		log.Fatalf("-token is required")
	}

	api, err := tracking.NewAPIClient(*baseURL, *token)
	if err != nil {
		log.Fatalf("%v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	render := printText
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		render = func(v tracking.View) { _ = enc.Encode(v) }
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := tracking.NewTracker(api, orderID, tracking.Config{PollInterval: *poll, OnUpdate: render}, logger)
	if err = tracker.Run(ctx); err != nil {
		log.Fatalf("tracking %s: %v", orderID, err)
	}
}

func printText(v tracking.View) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] order %s: %s\n", time.Now().Format(time.TimeOnly), v.OrderID, v.Status)

	if v.Cancelled {
		b.WriteString("  cancelled\n")
	}
	for _, s := range v.Steps {
		marker := " "
		switch s.State {
		case tracking.StepCompleted:
			marker = "x"
		case tracking.StepCurrent:
			marker = ">"
		}
		fmt.Fprintf(&b, "  [%s] %s\n", marker, s.Status)
	}
	if v.Courier != nil {
		fmt.Fprintf(&b, "  courier at %.5f,%.5f\n", v.Courier.Lat, v.Courier.Lon)
	}

	fmt.Print(b.String())
}
