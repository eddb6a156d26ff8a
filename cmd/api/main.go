package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Catalogos-api/docs"
	"github.com/jhoicas/Catalogos-api/internal/application/auth"
	"github.com/jhoicas/Catalogos-api/internal/application/catalog"
	"github.com/jhoicas/Catalogos-api/internal/application/export"
	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/application/tenant"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/blob"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/events"
	infrafeed "github.com/jhoicas/Catalogos-api/internal/infrastructure/feed"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Catalogos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/Catalogos-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogos-api/pkg/config"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

const blobsPath = "/api/blobs"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var closers []io.Closer

	m := metrics.New("catalogos")

	persister, err := persistence.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	opts := []memory.Option{memory.WithMetrics(m), memory.WithLogger(log)}
	if persister != nil {
		opts = append(opts, memory.WithPersister(persister))
		closers = append(closers, persister)
	}
	store := memory.NewStore(opts...)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar estado")
	}
	persistence.LogBucketSizes(ctx, persister, log.Component("persistence"))
	if cfg.Seed.Demo {
		loaded, err := seed.Load(ctx, store, time.Now().UTC(), cfg.Seed.GlobalTenants)
		if err != nil {
			log.Fatal().Err(err).Msg("datos demo")
		}
		if loaded {
			log.Info().Msg("datos demo cargados")
		}
	}

	// Imágenes: S3 (o MinIO) en producción; en memoria servidas por el propio API en desarrollo.
	var blobs ports.BlobStore
	serveBlobs := false
	if cfg.Blob.Driver == "s3" {
		s3Store, err := blob.NewS3Store(ctx, blob.S3Config{
			Bucket:          cfg.Blob.Bucket,
			Region:          cfg.Blob.Region,
			Endpoint:        cfg.Blob.Endpoint,
			AccessKeyID:     cfg.Blob.AccessKeyID,
			SecretAccessKey: cfg.Blob.SecretAccessKey,
			PathStyle:       cfg.Blob.PathStyle,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		blobs = s3Store
	} else {
		blobs = blob.NewMemoryStore(blobsPath)
		serveBlobs = true
	}

	var viewCache ports.ViewCache = cache.Noop{}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			// La caché es opcional: sin Redis se resuelve siempre.
			log.Warn().Err(err).Msg("redis no disponible, caché desactivada")
		} else {
			viewCache = rc
			closers = append(closers, rc)
		}
	}

	var publisher ports.ChangePublisher = events.Noop{}
	if len(cfg.Events.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:  cfg.Events.Brokers,
			Topic:    cfg.Events.Topic,
			ClientID: cfg.Events.ClientID,
		}, log.Component("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Kafka")
		}
		publisher = kp
		closers = append(closers, kp)
	}
	store.OnCommit(events.CommitNotifier(publisher, log, 5*time.Second))

	authUC, err := auth.NewAuthUseCase(cfg.Auth.AdminPassword, auth.JWTConfig{
		Secret:     cfg.Auth.JWTSecret,
		ExpMinutes: cfg.Auth.ExpMinutes,
		Issuer:     cfg.Auth.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de acceso")
	}
	catalogUC := catalog.NewUseCase(store, m)
	tenantUC := tenant.NewUseCase(store, viewCache, m, tenant.WithLogger(log.Component("tenant")))
	storeUC := usecase.NewStoreUseCase(store)
	contentUC := usecase.NewContentUseCase(store, blobs, cfg.Blob.URLTTL)
	comboUC := usecase.NewComboUseCase(store)
	swapListUC := usecase.NewSwapListUseCase(store)
	exportUC := export.NewUseCase(tenantUC, infrapdf.NewMarotoSheetGenerator(), infrafeed.NewXMLBuilderService())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    usecase.MaxImageBytes + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catalogos API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		TenantUC:   tenantUC,
		StoreUC:    storeUC,
		ContentUC:  contentUC,
		ComboUC:    comboUC,
		SwapListUC: swapListUC,
		ExportUC:   exportUC,
		Metrics:    m,
		JWTSecret:  cfg.Auth.JWTSecret,
		AppName:    cfg.App.Name,
		ServeBlobs: serveBlobs,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar recurso")
		}
	}

	log.Info().Uint64("version", store.Version()).Msg("aplicación detenida")
}
