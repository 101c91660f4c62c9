package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perfume-store/internal/api"
	"perfume-store/internal/catalog"
	"perfume-store/internal/checkout"
	"perfume-store/internal/config"
	"perfume-store/internal/db"
	"perfume-store/internal/db/queries"
	"perfume-store/internal/logger"
	"perfume-store/internal/orders"
	"perfume-store/internal/session"
	"perfume-store/internal/storefront"
	"perfume-store/internal/token"
	"perfume-store/internal/users"
	"perfume-store/internal/utils"

	"go.uber.org/zap"
)

// storage - реализации хранилищ выбранного драйвера
type storage struct {
	products storefront.ProductRepository
	orders   orders.Repository
	state    session.Store
	users    queries.AuthQueriesInterface
	close    func() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	store, err := openStorage(cfg, logg)
	if err != nil {
		logg.Fatal("failed to initialize storage", zap.String("driver", cfg.Storage), zap.Error(err))
	}
	defer func() { _ = store.close() }()

	service := storefront.New(storefront.Deps{
		Products:  store.products,
		Catalog:   catalog.NewCache(store.products, cfg.Catalog.CacheTTL, logg),
		State:     store.state,
		Orders:    orders.NewStore(store.orders, logg),
		Pricing:   checkout.NewPricing(cfg.Checkout),
		Log:       logg,
		MaxDrafts: cfg.Checkout.MaxDrafts,
	})

	sessions, err := token.NewJWTMaker(cfg.Session.Secret)
	if err != nil {
		logg.Fatal("invalid session secret", zap.Error(err))
	}

	passwords := utils.BcryptPasswords{}
	ctx := context.Background()

	if err := users.EnsureAdmin(ctx, store.users, passwords, cfg.Admin.Email, cfg.Admin.Password, logg); err != nil {
		logg.Fatal("failed to create admin user", zap.Error(err))
	}

	if err := seedCatalog(ctx, cfg.Catalog.SeedFile, store.products, service); err != nil {
		logg.Error("failed to seed catalog", zap.String("file", cfg.Catalog.SeedFile), zap.Error(err))
	}

	// Настраиваем маршруты
	router := api.SetupRouter(api.Deps{
		Config:          cfg,
		Log:             logg,
		Store:           service,
		Sessions:        sessions,
		JWT:             utils.NewJWTManager(&cfg.JWT),
		Users:           store.users,
		PasswordChecker: passwords,
	})

	// Настраиваем HTTP сервер
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		logg.Info("server is starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Настраиваем корректное завершение работы (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down server")

	// Даем 10 секунд на завершение текущих запросов
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logg.Info("server exited properly")
}

func openStorage(cfg *config.Config, logg *zap.Logger) (*storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		logg.Warn("using in-memory storage, data is lost on restart")
		return &storage{
			products: catalog.NewMemoryRepository(),
			orders:   orders.NewMemoryRepository(),
			state:    session.NewMemoryStore(),
			users:    users.NewMemoryStore(),
			close:    func() error { return nil },
		}, nil
	default:
		// Устанавливаем соединение с базой данных
		database, err := db.NewDatabase(&cfg.Database, logg)
		if err != nil {
			return nil, err
		}
		return &storage{
			products: queries.NewProductQueries(database),
			orders:   queries.NewOrderQueries(database),
			state:    queries.NewStateQueries(database),
			users:    queries.NewAuthQueries(database),
			close:    database.Close,
		}, nil
	}
}

// seedCatalog загружает CSV в каталог, если каталог пуст
func seedCatalog(ctx context.Context, path string, products storefront.ProductRepository, service *storefront.Service) error {
	if path == "" {
		return nil
	}

	existing, err := products.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = service.ImportProducts(ctx, file)
	return err
}
