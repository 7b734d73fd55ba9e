package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FinPeek/internal/app"
	"FinPeek/internal/collector"
	"FinPeek/internal/command"
	"FinPeek/internal/config"
	"FinPeek/internal/display"
	"FinPeek/internal/recorder"
	"FinPeek/internal/scheduler"
	"FinPeek/internal/server"
	"FinPeek/internal/store"
	"FinPeek/internal/view"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FinPeek starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded environment from .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher; nil means every panel is simulated
	var fetcher collector.Fetcher
	switch cfg.API.Provider {
	case config.ProviderAlphaVantage:
		fetcher = collector.NewAlphaVantageFetcher(cfg.API.BaseURL, cfg.API.APIKey, cfg.Proxy, cfg.API.Timeout, cfg.API.CacheTTL)
	case config.ProviderYahoo:
		fetcher = collector.NewYahooFetcher(cfg.API.BaseURL, cfg.Proxy, cfg.API.Timeout)
	}
	if fetcher != nil {
		log.Printf("[INFO] data source: %s", fetcher.Name())
	} else {
		log.Println("[INFO] data source: mock only")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init ticker store
	kv, err := store.Open(store.Options{
		Driver:        cfg.Store.Driver,
		Path:          cfg.Store.Path,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
	})
	if err != nil {
		log.Printf("[WARN] open %s store failed, last ticker will not persist: %v", cfg.Store.Driver, err)
		kv = store.NewMemoryStore()
	}
	defer kv.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	col := collector.NewCollector(fetcher, collector.NewMockGenerator(), rec, cfg.Benchmark)
	board := display.NewBoard()
	sched := scheduler.NewScheduler(cfg.Schedule.RefreshInterval, cfg.Schedule.CycleInterval)
	ctrl := app.NewController(ctx, col, kv, board, sched, cfg.Benchmark, app.ChartOptions{
		Width:          cfg.Chart.Width,
		Height:         cfg.Chart.Height,
		Padding:        cfg.Chart.Padding,
		StockColor:     cfg.Chart.StockColor,
		BenchmarkColor: cfg.Chart.BenchmarkColor,
	})
	dispatcher := command.NewDispatcher(ctrl)

	sched.Start()

	loaded, err := ctrl.LoadSaved(ctx)
	if err != nil {
		log.Printf("[ERROR] restore saved ticker: %v", err)
	}
	if !loaded {
		board.ShowPrompt(view.PromptText)
	}

	// HTTP surface
	h := server.NewHandler(board, dispatcher, kv, cfg.Benchmark, cfg.Server.PageRefreshSeconds)
	h.Scheduler = sched
	if fs, ok := rec.(server.FetchStats); ok {
		h.Telemetry = fs
	}
	srv := server.NewServer(cfg.Server.Port, h.Routes())
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("[ERROR] %v", err)
			cancel()
		}
	}()

	// Terminal commands
	go readCommands(ctx, dispatcher)

	log.Println("[INFO] FinPeek is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] %v", err)
	}
	ctrl.Close()
	cancel()
	sched.Stop()
	log.Println("[INFO] FinPeek stopped")
}

// readCommands feeds stdin lines to the dispatcher until EOF or shutdown.
func readCommands(ctx context.Context, d *command.Dispatcher) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if reply := d.HandleLine(ctx, scanner.Text()); reply != "" {
			fmt.Println(reply)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[WARN] read stdin: %v", err)
	}
}
