// Package grpcx runs the gRPC health endpoint used by orchestrators.
package grpcx

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Health struct {
	Server *grpc.Server
	status *health.Server
	log    *zap.Logger
}

// NewHealth registers the standard health service plus one entry per
// named service, all starting as NOT_SERVING.
func NewHealth(log *zap.Logger, services ...string) *Health {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	h := &Health{Server: srv, status: hs, log: log.Named("grpc")}
	for _, s := range append([]string{""}, services...) {
		hs.SetServingStatus(s, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return h
}

func (h *Health) SetServing(service string, ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.status.SetServingStatus(service, st)
}

// Serve blocks on lis until ctx is done.
func (h *Health) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		h.status.Shutdown()
		h.Server.GracefulStop()
	}()
	h.log.Info("health listening", zap.String("addr", lis.Addr().String()))
	return h.Server.Serve(lis)
}

func (h *Health) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return h.Serve(ctx, lis)
}
