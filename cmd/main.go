package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tbessonov/securetodo-server/internal/accesscontrol"
	"github.com/tbessonov/securetodo-server/internal/api/http/httpctx"
	"github.com/tbessonov/securetodo-server/internal/api/http/router"
	"github.com/tbessonov/securetodo-server/internal/config"
	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
	"github.com/tbessonov/securetodo-server/internal/repository/postgres"
	"github.com/tbessonov/securetodo-server/internal/security"
	"github.com/tbessonov/securetodo-server/internal/server"
	"github.com/tbessonov/securetodo-server/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	itemRepo := postgres.NewItemRepository(db)

	authority := accesscontrol.NewFactory(cfg.Authority, logger)
	roles := security.Roles{
		TodoCreator:           model.ResourceByExternalID(cfg.Authority.CreatorRole),
		RoleHelper:            model.ResourceByExternalID(cfg.Authority.RoleHelper),
		RoleHelperCredentials: model.Credentials{Password: cfg.Authority.RoleHelperPassword},
	}

	userService := service.NewUser(userRepo, authority, roles, logger)
	itemService := service.NewItem(itemRepo, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(userService, itemService, authority, ctxMgr, db, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
