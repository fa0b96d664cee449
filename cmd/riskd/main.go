package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradegate/pretrade/internal/bus"
	"github.com/tradegate/pretrade/internal/cache"
	"github.com/tradegate/pretrade/internal/clock"
	"github.com/tradegate/pretrade/internal/logger"
	"github.com/tradegate/pretrade/internal/model"
	"github.com/tradegate/pretrade/internal/monitoring"
	"github.com/tradegate/pretrade/internal/portfolio"
	"github.com/tradegate/pretrade/internal/provider"
	"github.com/tradegate/pretrade/internal/risk"
	"github.com/tradegate/pretrade/pkg/reporting"
)

func main() {
	var (
		configFile = flag.String("config", "", "Risk engine configuration file (JSON)")
		envFile    = flag.String("env", ".env", "Environment file path (default: .env)")
		traderID   = flag.String("trader", "TRADER-001", "Trader ID for this engine instance")
		venue      = flag.String("venue", "BYBIT", "Venue to load instruments from")
		category   = flag.String("category", "spot", "Instrument category (spot, linear, inverse)")
		listenAddr = flag.String("listen", ":9090", "Listen address for metrics and health endpoints")
		auditPath  = flag.String("audit", "", "Denial audit file written on shutdown (.csv, .json or .xlsx); 'auto' picks a dated path")
		logLevel   = flag.String("log-level", "INFO", "Log level (DEBUG, INFO, WARNING, ERROR)")
		logDir     = flag.String("log-dir", "", "Directory for dated log files (default: stderr only)")
	)
	flag.Parse()

	if err := loadEnvFile(*envFile); err != nil {
		log.Printf("Warning: Could not load .env file (%v), checking environment variables...", err)
	}

	cfg := risk.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = risk.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	level := logger.ParseLevel(*logLevel)
	if cfg.Debug {
		level = logger.LevelDebug
	}
	var lg *logger.Logger
	if *logDir != "" {
		w, err := logger.NewFileWriter(*logDir, "riskd")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer w.Close()
		lg = logger.NewWithWriter("riskd", level, w)
	} else {
		lg = logger.New("riskd", level)
	}

	c := cache.New()
	b := bus.New(lg.WithComponent("bus"))
	p := portfolio.New(c)
	clk := clock.NewLiveClock()

	engine, err := risk.NewEngine(
		model.TraderID(*traderID),
		cfg,
		clk,
		c,
		b,
		p,
		lg.WithComponent("risk"),
	)
	if err != nil {
		log.Fatalf("Failed to construct risk engine: %v", err)
	}

	auditor := reporting.NewDenialAuditReporter()
	execHandler := auditor.Attach(b, risk.TopicRiskEvents)
	// Until a real execution engine is wired in, denial events flowing
	// to the execution endpoint land in the audit reporter.
	b.Register("ExecEngine.process", execHandler)

	lg.Info("Risk engine constructed (trader=%s, bypass=%v)", *traderID, cfg.Bypass)

	if err := loadInstruments(c, lg, *venue, *category); err != nil {
		lg.Warning("Instrument load failed: %v", err)
	}

	health := monitoring.NewHealthChecker()
	health.SetTradingState(engine.TradingState().String())

	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)

	server := &http.Server{Addr: *listenAddr, Handler: mux}
	go func() {
		lg.Info("Serving metrics and health on %s", *listenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	lg.Info("Received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("HTTP shutdown error: %v", err)
	}

	writeAudit(auditor, *auditPath, *traderID, lg)
	lg.Info("Shutdown complete (%d commands, %d denials)", engine.CommandCount(), auditor.Count())
}

func loadInstruments(c *cache.Cache, lg *logger.Logger, venue, category string) error {
	apiKey := os.Getenv("BYBIT_API_KEY")
	apiSecret := os.Getenv("BYBIT_API_SECRET")

	prov := provider.NewBybitInstrumentProvider(provider.BybitConfig{
		APIKey:    apiKey,
		APISecret: apiSecret,
		Testnet:   os.Getenv("BYBIT_TESTNET") == "true",
		Category:  category,
		Venue:     model.Venue(venue),
	}, lg.WithComponent("provider"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := prov.LoadAll(ctx, c)
	return err
}

func writeAudit(auditor *reporting.DenialAuditReporter, path, traderID string, lg *logger.Logger) {
	denials := auditor.Denials()
	states := auditor.StateChanges()

	if len(denials) > 0 || len(states) > 0 {
		console := reporting.NewConsoleReporter()
		console.RenderDenials(denials)
		console.RenderStateChanges(states)
	}

	if path == "" {
		return
	}
	if path == "auto" {
		path = reporting.DefaultAuditPath(traderID, "xlsx")
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = reporting.NewCSVReporter().WriteAuditCSV(denials, states, path)
	case ".json":
		err = reporting.NewJSONReporter().WriteAuditJSON(denials, states, path)
	default:
		err = reporting.NewExcelReporter().WriteAuditXLSX(denials, states, path)
	}
	if err != nil {
		lg.Error("Failed to write audit file: %v", err)
		return
	}
	lg.Info("Denial audit written to %s", path)
}

func loadEnvFile(envFile string) error {
	if _, err := os.Stat(envFile); err == nil {
		return godotenv.Load(envFile)
	}
	return fmt.Errorf("env file %s not found", envFile)
}
