package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"b8_shield/internal/delivery"
	"b8_shield/internal/delivery/channels"
	"b8_shield/internal/global"
	"b8_shield/internal/logger"
	"b8_shield/internal/worker"
)

// initLogger boots the logging system before anything else can log.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized")
}

// main_thread starts the Fiber server, with TLS when configured.
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	address := ":" + cfg.Address
	log := logger.GetAppLogger()

	// Resolve relative cert/key paths against the repo root (the directory
	// holding config/env), matching how the env file itself is located.
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// startDeliveryProcessor runs the outbox drain loop in its own goroutine.
func startDeliveryProcessor(ctx context.Context) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	processor, err := delivery.NewProcessor(channels.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPassword,
		FromName:  "B8 Shield",
		FromEmail: cfg.SMTPFrom,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create delivery processor, continuing without delivery worker")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("[DELIVERY] Processor goroutine panic")
			}
		}()
		log.Info("[DELIVERY] Starting delivery processor")
		processor.Start(ctx)
		log.Warn("[DELIVERY] Processor stopped")
	}()
}

// startWorkers launches the background jobs: the nightly customer status
// sweep and the periodic ambassador trigger scan.
func startWorkers(ctx context.Context) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	refresh, err := worker.NewCustomerRefreshWorker("")
	if err != nil {
		log.WithError(err).Error("Failed to create customer refresh worker")
	} else if err := refresh.Start(ctx); err != nil {
		log.WithError(err).Error("Failed to start customer refresh worker")
	} else {
		log.Info("[WORKER] Customer refresh worker started")
	}

	if cfg.AmbassadorAlertEmail == "" {
		log.Info("[WORKER] AMBASSADOR_ALERT_EMAIL not set, trigger alerts disabled")
		return
	}
	trigger, err := worker.NewAmbassadorTriggerWorker(cfg.AmbassadorAlertEmail, 15*time.Minute)
	if err != nil {
		log.WithError(err).Error("Failed to create ambassador trigger worker")
		return
	}
	go trigger.Start(ctx)
	log.Info("[WORKER] Ambassador trigger worker started")
}

func main() {
	initLogger()

	InitGlobal()

	InitRegistry()

	InitDefaultData()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startDeliveryProcessor(ctx)
	startWorkers(ctx)

	main_thread()
}
