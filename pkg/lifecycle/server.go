// Package lifecycle runs a service next to its HTTP and gRPC health
// endpoints and shuts everything down together.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/bleradar/pkg/grpc"
	ggrpc "google.golang.org/grpc"
)

const (
	MaxRecvSize       = 4 * 1024 * 1024 // 4MB
	MaxSendSize       = 4 * 1024 * 1024 // 4MB
	ShutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for creating a server.
type ServerOptions struct {
	ListenAddr      string // HTTP
	GRPCAddr        string // health only; empty disables it
	ServiceName     string
	Service         Service
	Handler         http.Handler
	GRPCOptions     []ggrpc.ServerOption // appended after the message size limits
	ShutdownTimeout time.Duration
}

// RunServer starts a service with the provided options and blocks until a
// signal, a component failure, or ctx ends it.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	lis, err := net.Listen("tcp", opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.ListenAddr, err)
	}

	httpServer := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	var grpcServer *grpc.Server

	if opts.GRPCAddr != "" {
		serverOpts := append([]ggrpc.ServerOption{
			ggrpc.MaxRecvMsgSize(MaxRecvSize),
			ggrpc.MaxSendMsgSize(MaxSendSize),
		}, opts.GRPCOptions...)

		grpcServer = grpc.NewServer(opts.GRPCAddr, grpc.WithServerOptions(serverOpts...))

		if err := grpcServer.Listen(); err != nil {
			_ = lis.Close()
			return fmt.Errorf("failed to setup gRPC server: %w", err)
		}

		grpcServer.SetServing(opts.ServiceName, true)
	}

	errChan := make(chan error, 3)

	report := func(what string, err error) {
		select {
		case errChan <- fmt.Errorf("%s: %w", what, err):
		default:
			log.Printf("%s error: %v", what, err)
		}
	}

	go func() {
		if err := opts.Service.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			report("service", err)
		}
	}()

	go func() {
		log.Printf("Starting HTTP server on %s", lis.Addr())

		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report("http server", err)
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Serve(); err != nil {
				report("grpc server", err)
			}
		}()
	}

	return handleShutdown(ctx, cancel, opts, httpServer, grpcServer, errChan)
}

func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	opts *ServerOptions,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	errChan chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(sigChan)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)
		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = ShutdownTimeout
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	cancel()

	if grpcServer != nil {
		grpcServer.Stop(shutdownCtx)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during HTTP server shutdown: %v", err)
	}

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		log.Printf("Error during service shutdown: %v", err)

		return errors.Join(runErr, fmt.Errorf("shutdown error: %w", err))
	}

	return runErr
}
