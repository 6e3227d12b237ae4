package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/storefront-catalog/internal/cart"
	"github.com/MikeMC777/storefront-catalog/internal/config"
	"github.com/MikeMC777/storefront-catalog/internal/db"
	"github.com/MikeMC777/storefront-catalog/internal/logx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("config")
	}
	logx.Init(logx.Options{Production: cfg.Production()})

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logx.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		logx.Fatal().Err(err).Msg("migrate")
	}

	l, err := net.Listen("tcp", cfg.CartListenAddr)
	if err != nil {
		logx.Fatal().Err(err).Msg("listen")
	}

	srv := grpc.NewServer()
	cart.Register(srv, cart.NewServer(cart.NewPGRepo(pool)))
	hs := health.NewServer()
	hs.SetServingStatus(cart.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		hs.Shutdown()
		srv.GracefulStop()
	}()

	logx.Info().Str("addr", cfg.CartListenAddr).Msg("cart-service listening")
	if err := srv.Serve(l); err != nil {
		logx.Fatal().Err(err).Msg("serve")
	}
	logx.Info().Msg("cart-service stopped")
}
