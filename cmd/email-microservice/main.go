package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/config"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/email"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/events/consumers/ticket"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/rabbitmq"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/router"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger := logs.New(cfg.LogLevel)
	if envLoaded {
		logger.Info("loaded environment variables from .env file")
	}

	rabbitmqClient, err := rabbitmq.NewClient(logger, cfg.RabbitMQURL)
	if err != nil {
		logger.Error("failed to initialize RabbitMQ client", "error", err)
		os.Exit(1)
	}
	defer rabbitmqClient.Close()

	sender := initializeSender(logger, cfg)

	r, err := router.New(logger, rabbitmqClient)
	if err != nil {
		logger.Error("failed to create router", "error", err)
		os.Exit(1)
	}

	if err := startServices(logger, cfg, rabbitmqClient, sender, r); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}

	logger.Info("application shut down gracefully")
}

func initializeSender(logger logs.Logger, cfg *config.Config) email.Sender {
	if cfg.Backend == config.BackendSMTP {
		logger.Info("using SMTP delivery backend", "host", cfg.SMTP.Host)
		return email.NewSMTPSender(cfg.SMTP)
	}

	logger.Info("using EmailJS delivery backend", "endpoint", cfg.EmailJS.APIURL)
	builder := email.NewPayloadBuilder(cfg.EmailJS)
	deliverer := email.NewEmailJSClient(logger, cfg.EmailJS.APIURL)
	return email.NewEmailJSSender(builder, deliverer)
}

func startServices(logger logs.Logger, cfg *config.Config, rabbitmqClient *rabbitmq.Client, sender email.Sender, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ticket.NewTicketPurchasedConsumer(logger, sender, rabbitmqClient).Start(gCtx)
	})

	g.Go(func() error {
		return startHTTPServer(gCtx, logger, cfg.Port, handler)
	})

	return g.Wait()
}

func startHTTPServer(ctx context.Context, logger logs.Logger, port string, handler http.Handler) error {
	srv, err := web.InitializeServer(port, handler)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shCancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Error("failed to shutdown server", "error", err)
		} else {
			logger.Info("server shutdown complete")
		}
	}()

	logger.Info("starting HTTP server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}
