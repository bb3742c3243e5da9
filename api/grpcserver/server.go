package grpcserver

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check service name reported for the billing API.
const ServiceName = "tenderguard.billing"

// Server wraps a gRPC server exposing the standard health service.
type Server struct {
	*grpc.Server
	health *health.Server
}

// New returns a gRPC server whose health status starts as NOT_SERVING.
func New(opts ...grpc.ServerOption) *Server {
	s := &Server{Server: grpc.NewServer(opts...), health: health.NewServer()}
	healthpb.RegisterHealthServer(s.Server, s.health)
	s.SetServing(false)
	return s
}

// SetServing flips both the overall and the named service status.
func (s *Server) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Shutdown marks the server NOT_SERVING and stops it gracefully.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}
