package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/internal/http/handlers"
	applog "backoffice/internal/log"
	"backoffice/internal/notify"
	"backoffice/internal/repos"
	"backoffice/internal/services"
	"backoffice/internal/store"
)

func main() {
	if err := run(); err != nil {
		applog.Error(nil, "app.exit", err, nil)
		applog.Sync()
		os.Exit(1)
	}
}

func run() error {
	if _, err := applog.Init("info", ""); err != nil {
		return err
	}
	defer applog.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := applog.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	applog.Info(nil, "config.loaded", cfg.Summary())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := store.Open(cfg.Storage())
	if err != nil {
		return err
	}
	opts := repos.Options{BcryptCost: cfg.BcryptCost}
	if cfg.Seed {
		opts.Seed = &repos.SeedOptions{
			AdminName:     cfg.SeedAdminName,
			AdminEmail:    cfg.SeedAdminEmail,
			AdminPassword: cfg.SeedAdminPassword,
			UserPassword:  cfg.SeedUserPassword,
		}
		if cfg.SeedRandom != 0 {
			opts.Seed.Rand = rand.New(rand.NewPCG(cfg.SeedRandom, cfg.SeedRandom))
		}
	}
	st, err := repos.Open(ctx, backend, opts)
	if err != nil {
		_ = backend.Close()
		return err
	}
	defer st.Close()

	var authn auth.Authenticator = auth.HeaderAuthenticator{}
	if cfg.AuthMode == config.AuthJWT {
		if authn, err = auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTTTL); err != nil {
			return err
		}
	}

	var transport notify.Transport = notify.LogTransport{}
	if cfg.SMTPHost != "" {
		transport = notify.SMTPTransport{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}
	}
	mailer, err := notify.NewMailer(cfg.MailFrom, transport)
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(mailer.Deliver, cfg.NotifyWorkers, cfg.NotifyQueue)
	if err := dispatcher.Start(ctx); err != nil {
		return err
	}

	authSvc := services.NewAuthService(st.Users, authn)
	deps := handlers.NewDeps(st, authSvc, dispatcher, time.Now)
	app := handlers.NewApp(deps, handlers.AppOptions{
		BodyLimit:      cfg.BodyLimit,
		LoginRateLimit: cfg.LoginRateLimit,
		AccessLog:      os.Stdout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		applog.Info(nil, "app.listen", map[string]any{"port": cfg.Port})
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		errs := []error{app.ShutdownWithContext(shutdownCtx), dispatcher.Stop(shutdownCtx)}
		applog.L().Info("app.stopped", zap.Errors("shutdown", errs))
		return errors.Join(errs...)
	})
	return g.Wait()
}
