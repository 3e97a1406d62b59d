package grpcserver

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"exerciseTracker/internal/config"
)

// Pinger is satisfied by *sql.DB and *db.Store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports store reachability through the standard grpc.health.v1 service.
type Health struct {
	hs       *health.Server
	pinger   Pinger
	interval time.Duration
}

// NewHealth creates a Health that starts out NOT_SERVING until the first probe.
func NewHealth(p Pinger, interval time.Duration) *Health {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &Health{hs: hs, pinger: p, interval: interval}
}

// Probe pings the store once and updates the overall serving status.
func (h *Health) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.PingContext(ctx); err != nil {
		log.Warn().Err(err).Msg("Store ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.hs.SetServingStatus("", status)
	return status
}

// Check answers a health request without going through the network.
func (h *Health) Check(ctx context.Context) (*healthpb.HealthCheckResponse, error) {
	return h.hs.Check(ctx, &healthpb.HealthCheckRequest{})
}

// run probes until ctx is cancelled.
func (h *Health) run(ctx context.Context) {
	t := time.NewTicker(h.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h.Probe(ctx)
		}
	}
}

// StartGRPC starts the health server on cfg.GRPC.Address and returns the bound
// address with a shutdown function. It does nothing when the address is empty.
func StartGRPC(cfg *config.Config, h *Health) (string, func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	addr := cfg.GRPC.Address
	if addr == "" {
		return "", func(context.Context) error { return nil }, nil
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, h.hs)

	probeCtx, stopProbe := context.WithCancel(context.Background())
	h.Probe(probeCtx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); h.run(probeCtx) }()
	go func() {
		defer wg.Done()
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	return lis.Addr().String(), func(ctx context.Context) error {
		stopProbe()
		h.hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); wg.Wait(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
