package router

import (
	"errors"
	"net/http"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/web"
)

var (
	ErrLoggerIsNil       = errors.New("logger is nil")
	ErrBrokerPingerIsNil = errors.New("broker pinger is nil")
)

// BrokerPinger reports whether the broker connection is healthy.
type BrokerPinger interface {
	Ping() error
}

type Router struct {
	logger logs.Logger
	broker BrokerPinger
	mux    *http.ServeMux
}

func New(logger logs.Logger, broker BrokerPinger) (*Router, error) {
	if logger == nil {
		return nil, ErrLoggerIsNil
	}
	if broker == nil {
		return nil, ErrBrokerPingerIsNil
	}

	r := &Router{
		logger: logger,
		broker: broker,
		mux:    http.NewServeMux(),
	}
	r.setupRoutes()
	return r, nil
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) setupRoutes() {
	r.mux.HandleFunc("GET /health", r.healthHandler)
	r.mux.HandleFunc("GET /readyz", r.readyzHandler)
}

func (r *Router) healthHandler(w http.ResponseWriter, _ *http.Request) {
	web.RespondWithJSON(w, r.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) readyzHandler(w http.ResponseWriter, _ *http.Request) {
	if err := r.broker.Ping(); err != nil {
		r.logger.Error("readiness check failed", "error", err)
		web.RespondWithJSON(w, r.logger, http.StatusServiceUnavailable, map[string]string{"status": "broker unavailable"})
		return
	}
	web.RespondWithJSON(w, r.logger, http.StatusOK, map[string]string{"status": "ready"})
}
