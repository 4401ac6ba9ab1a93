/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package grpc runs the agent's gRPC health endpoint.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// ServerOption is a function type that modifies Server configuration.
type ServerOption func(*Server)

var (
	errInternalError = errors.New("internal error")
	errNotListening  = errors.New("server is not listening")
)

const shutdownTimer = 5 * time.Second

// Server is a gRPC server exposing the standard health service.
type Server struct {
	srv        *grpc.Server
	health     *health.Server
	addr       string
	mu         sync.RWMutex
	services   map[string]struct{}
	serverOpts []grpc.ServerOption
	lis        net.Listener
}

// NewServer creates a server for addr with the health service registered.
func NewServer(addr string, opts ...ServerOption) *Server {
	s := &Server{
		addr:     addr,
		services: make(map[string]struct{}),
		serverOpts: []grpc.ServerOption{
			grpc.ChainUnaryInterceptor(
				LoggingInterceptor,
				RecoveryInterceptor,
			),
			grpc.KeepaliveParams(keepalive.ServerParameters{
				MaxConnectionIdle: 10 * time.Minute,
				Time:              120 * time.Second,
				Timeout:           20 * time.Second,
			}),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.srv = grpc.NewServer(s.serverOpts...)
	s.health = health.NewServer()

	healthpb.RegisterHealthServer(s.srv, s.health)

	return s
}

// WithServerOptions adds gRPC server options.
func WithServerOptions(opt ...grpc.ServerOption) ServerOption {
	return func(s *Server) {
		s.serverOpts = append(s.serverOpts, opt...)
	}
}

// SetServing reports service as serving or not serving.
func (s *Server) SetServing(service string, serving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.services[service] = struct{}{}
	s.health.SetServingStatus(service, status)
}

// Listen binds the listening socket without serving.
func (s *Server) Listen() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()

	log.Printf("gRPC server listening on %s", lis.Addr())

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lis == nil {
		return nil
	}

	return s.lis.Addr()
}

// Serve blocks serving on the socket bound by Listen.
func (s *Server) Serve() error {
	s.mu.RLock()
	lis := s.lis
	s.mu.RUnlock()

	if lis == nil {
		return errNotListening
	}

	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop marks every service as not serving and stops the server, forcing it
// after a grace period.
func (s *Server) Stop(ctx context.Context) {
	s.mu.Lock()
	for service := range s.services {
		s.health.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	s.mu.Unlock()

	s.health.Shutdown()

	stopped := make(chan struct{})

	go func() {
		s.srv.GracefulStop()
		close(stopped)
	}()

	timer := time.NewTimer(shutdownTimer)
	defer timer.Stop()

	select {
	case <-stopped:
		log.Printf("gRPC server stopped gracefully")
	case <-ctx.Done():
		log.Printf("gRPC server shutdown canceled, forcing stop")
		s.srv.Stop()
	case <-timer.C:
		log.Printf("gRPC server shutdown timed out, forcing stop")
		s.srv.Stop()
	}
}

// LoggingInterceptor logs RPC calls.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("gRPC call: %s Duration: %v Error: %v",
		info.FullMethod,
		time.Since(start),
		err)

	return resp, err
}

// RecoveryInterceptor handles panics in RPC handlers.
func RecoveryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in %s: %v", info.FullMethod, r)

			err = errInternalError
		}
	}()

	return handler(ctx, req)
}
