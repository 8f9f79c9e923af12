package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"osintkit/internal/banner"
	"osintkit/internal/config"
	"osintkit/internal/device"
	"osintkit/internal/geoip"
	"osintkit/internal/history"
	"osintkit/internal/journal"
	"osintkit/internal/phone"
	"osintkit/internal/shell"
	"osintkit/internal/store"
	"osintkit/internal/web"
	"osintkit/middleware"

	"github.com/pterm/pterm"
)

func main() {
	serve := flag.Bool("serve", false, "run the local HTTP API instead of the interactive shell")
	flag.Parse()

	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", logger.Args("error", err))
		os.Exit(1)
	}

	dataStore, err := store.New(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open data directory", logger.Args("error", err))
		os.Exit(1)
	}

	geoIPService := geoip.NewGeoIPService(cfg, logger)
	phoneService := phone.NewPhoneService(logger)
	journalService := journal.NewJournalService(dataStore, logger)
	historyService := history.NewHistoryService(dataStore, journalService)
	deviceService := device.NewDeviceService(dataStore, geoIPService, journalService, logger)

	if *serve {
		runServer(cfg, logger, geoIPService, phoneService, deviceService, historyService, journalService)
		return
	}

	banner.Print()
	shell.New(geoIPService, phoneService, deviceService, historyService, journalService, os.Stdin).Run()
}

func runServer(
	cfg *config.Config,
	logger *pterm.Logger,
	geoIPService *geoip.GeoIPService,
	phoneService *phone.PhoneService,
	deviceService *device.DeviceService,
	historyService *history.HistoryService,
	journalService *journal.JournalService,
) {
	router := web.SetupRoutes(web.Handlers{
		GeoIP:   geoip.NewGeoIPHandlers(geoIPService, historyService),
		Phone:   phone.NewPhoneHandlers(phoneService, historyService),
		Device:  device.NewDeviceHandlers(deviceService),
		Journal: journal.NewJournalHandlers(journalService),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.LoggingMiddleware(logger)(router),
	}

	go func() {
		logger.Info("Serving local API", logger.Args("port", cfg.Port, "data_dir", cfg.DataDir))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", logger.Args("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", logger.Args("error", err))
	}
}
