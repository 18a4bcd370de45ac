package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/location-manager/docs"
	"github.com/jhoicas/location-manager/internal/application/auth"
	"github.com/jhoicas/location-manager/internal/application/export"
	"github.com/jhoicas/location-manager/internal/application/ledger"
	"github.com/jhoicas/location-manager/internal/application/usecase"
	"github.com/jhoicas/location-manager/internal/domain/repository"
	"github.com/jhoicas/location-manager/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/location-manager/internal/infrastructure/pdf"
	"github.com/jhoicas/location-manager/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/location-manager/internal/infrastructure/xlsx"
	"github.com/jhoicas/location-manager/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/location-manager/internal/interfaces/http"
	"github.com/jhoicas/location-manager/pkg/config"
	"github.com/jhoicas/location-manager/pkg/logger"
)

// storage repositorios del driver elegido (postgres o memoria).
type storage struct {
	shops    repository.ShopRepository
	products repository.ProductRepository
	entries  repository.EntryRepository
	users    repository.UserRepository
	tx       repository.TxRunner
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			shops:    store.Shops(),
			products: store.Products(),
			entries:  store.Entries(),
			users:    store.Users(),
			tx:       store.TxRunner(),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		shops:    postgres.NewShopRepository(pool),
		products: postgres.NewProductRepository(pool),
		entries:  postgres.NewEntryRepository(pool),
		users:    postgres.NewUserRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	shopUC := usecase.NewShopUseCase(store.shops, store.tx, log)
	productUC := usecase.NewProductUseCase(store.products, store.entries, store.tx, log)
	entryUC := ledger.NewEntryUseCase(store.entries, store.shops, store.products, log)

	// Descarga del local: json por defecto + pdf, xlsx y xml
	exportUC := export.NewShopExportUseCase(store.shops, store.entries, log, map[export.Format]export.Renderer{
		export.FormatPDF:  infrapdf.NewShopRenderer(),
		export.FormatXLSX: infraxlsx.NewShopRenderer(),
		export.FormatXML:  xmldoc.NewShopRenderer(),
	})

	authUC := auth.NewAuthUseCase(store.users, store.shops, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Location Manager API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ShopUC:    shopUC,
		ProductUC: productUC,
		EntryUC:   entryUC,
		ExportUC:  exportUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
