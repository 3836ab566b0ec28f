package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/fitconnect/community/internal/api"
	"github.com/fitconnect/community/internal/config"
	"github.com/fitconnect/community/internal/metrics"
	"github.com/fitconnect/community/internal/middleware"
	"github.com/fitconnect/community/internal/rpc"
	"github.com/fitconnect/community/internal/service"
	"github.com/fitconnect/community/internal/storage/sqlite"
	"github.com/fitconnect/community/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	// Storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	// Services are wired here explicitly. The membership service probes
	// user and group existence through its peers, not their stores.
	userSvc := service.NewUserService(store)
	groupSvc := service.NewGroupService(store, store)
	membershipSvc := service.NewMembershipService(store, userSvc, groupSvc)

	// Connect RPC binding
	communityServer := rpc.NewCommunityServer(userSvc, groupSvc, membershipSvc)
	rpcPath, rpcHandler := communityServer.Handler(
		connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			metrics.Interceptor(),
		),
	)

	// HTTP REST binding
	restHandler := api.NewHandler(userSvc, groupSvc, membershipSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(metrics.HTTPMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}))

	restHandler.Routes(r)
	r.Handle("/metrics", metrics.Handler())

	// Mount the RPC procedures on the same listener as the REST routes.
	r.Handle(rpcPath+"*", rpcHandler)

	// h2c enables HTTP/2 without TLS, required for Connect over gRPC framing.
	handler := h2c.NewHandler(r, &http2.Server{})

	slog.Info("community service starting",
		"address", cfg.ListenAddr,
		"rpc_path", strings.TrimSuffix(rpcPath, "/"),
	)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
