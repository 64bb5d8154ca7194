package main

import (
	"context"
	"fmt"
	"time"

	"food-menu/bot"
	"food-menu/config"
	"food-menu/db"
	"food-menu/filestore"
	"food-menu/objectstore"
	"food-menu/services"
	"food-menu/session"
	"food-menu/web"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// serve builds the dependency graph from cfg and runs the web server until ctx
// is cancelled.
func serve(ctx context.Context) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		products   services.ProductStore
		categories services.CategoryStore
		resolver   services.CategoryResolver
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		if cfg.AutoMigrate {
			if err := applyMigrations(cfg.DB.DSN(), logger); err != nil {
				return err
			}
		}
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer pool.Close()
		store := db.NewStore(pool)
		products, categories = store, store
		resolver = services.StoreCategories{Store: store, Log: logger}
	default:
		store := filestore.New(cfg.Store.ProductsFile)
		if err := store.Check(); err != nil {
			logger.Warn().Err(err).Msg("products file unreadable, starting with an empty menu")
		}
		products = store
		resolver = services.FixedCategories(cfg.Menu.Categories)
	}

	var (
		images    services.ImageStore
		uploadDir string
	)
	switch cfg.Image.Backend {
	case config.ImageS3:
		s3, err := objectstore.NewS3(objectstore.S3Config{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			Bucket:        cfg.S3.Bucket,
			UseSSL:        cfg.S3.UseSSL,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return err
		}
		images = s3
	default:
		disk := objectstore.NewDisk(cfg.Image.UploadDir, "/uploads")
		images, uploadDir = disk, disk.Dir()
	}

	var sessionStore session.Store
	switch cfg.Session.Backend {
	case config.SessionRedis:
		client, err := session.DialRedis(ctx, cfg.Session.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		sessionStore = session.NewRedisStore(client, cfg.Session.TTL)
	default:
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
	}

	var notifier services.ChangeNotifier
	if cfg.Telegram.Token != "" && cfg.Telegram.AdminChatID != 0 {
		n, err := bot.NewNotifier(cfg.Telegram.Token, cfg.Telegram.AdminChatID, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram notifier disabled")
		} else {
			notifier = n
		}
	}

	var verifier services.Verifier = services.PlainVerifier{Username: cfg.Admin.Username, Password: cfg.Admin.Password}
	if cfg.Admin.PasswordHash != "" {
		verifier = services.BcryptVerifier{Username: cfg.Admin.Username, Hash: cfg.Admin.PasswordHash}
	}

	handler, err := web.NewRouter(web.Options{
		Menu:         services.NewMenu(resolver, products),
		Admin:        services.NewAdmin(products, categories, services.NewImages(images, logger), notifier, logger),
		Verifier:     verifier,
		Sessions:     session.NewManager(sessionStore, cfg.Session.TTL, cfg.Session.SecureCookie, logger),
		Log:          logger,
		UploadDir:    uploadDir,
		CSRFKey:      []byte(cfg.Session.CSRFKey),
		SecureCookie: cfg.Session.SecureCookie,
	})
	if err != nil {
		return err
	}

	srv := web.NewServer(cfg.Addr(), handler)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.Addr()).
			Str("store", cfg.Store.Backend).
			Str("images", cfg.Image.Backend).
			Str("sessions", cfg.Session.Backend).
			Msg("server started")
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownTimeout)
	})
	return g.Wait()
}
