// @title         Simple Shop API
// @version       1.0
// @description   Users and products for a small online shop.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token. Accepted formats: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/drelaann/simple-ecommerce-api/api/http"
	"github.com/drelaann/simple-ecommerce-api/api/http/handlers"
	"github.com/drelaann/simple-ecommerce-api/pkg/config"
	"github.com/drelaann/simple-ecommerce-api/pkg/health"
	"github.com/drelaann/simple-ecommerce-api/pkg/health/checkers"
	"github.com/drelaann/simple-ecommerce-api/pkg/logger"
	"github.com/drelaann/simple-ecommerce-api/pkg/metrics"
	"github.com/drelaann/simple-ecommerce-api/pkg/product"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository/gormrepo"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/jwt"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/password"
	"github.com/drelaann/simple-ecommerce-api/pkg/storage"
	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "shop",
		Short:         "Simple shop API: users and products",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			logger.Init(logger.Config{
				Env:         cfg.LogEnv,
				Level:       cfg.LogLevel,
				ServiceName: cfg.ProjectName,
				Version:     cfg.Version,
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return migrate(cmd.Context(), db)
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	// bare invocation serves
	root.RunE = serveCmd.RunE

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		logger.L().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.Config) (*storage.DB, error) {
	db, err := storage.Open(ctx, cfg.DatabaseURL, storage.Options{
		MaxConns: int32(cfg.DBMaxConns),
		Debug:    cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}

func migrate(ctx context.Context, db *storage.DB) error {
	applied, err := db.Migrate(ctx)
	if err != nil {
		return err
	}
	logger.L().Info("migrations applied", zap.String("dialect", string(db.Dialect)), zap.Int64s("versions", applied))
	return nil
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.L()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migrate(ctx, db); err != nil {
		return err
	}

	reg, err := metrics.New()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := reg.WatchDB(string(db.Dialect), db.SQL()); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// Wire dependencies
	userUC := user.NewService(gormrepo.NewUserRepository(db.Gorm), password.NewBcrypt(cfg.BcryptCost))
	productUC := product.NewService(gormrepo.NewProductRepository(db.Gorm))
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	readiness := health.NewService(checkers.NewDatabaseChecker(string(db.Dialect), db))

	app := http.NewApp(http.AppOptions{
		Name:        cfg.ProjectName,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
		Metrics:     reg,
	})
	http.Register(app,
		handlers.NewHealthHandler(readiness, cfg.ProjectName, cfg.Version),
		handlers.NewAuthHandler(userUC, jwtGen, jwtGen.TTL()),
		handlers.NewUserHandler(userUC),
		handlers.NewProductHandler(productUC),
		jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
