package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	approveOwnerHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/approve_owner"
	cancelOrderHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/cancel_order"
	checkAvailabilityHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/check_availability"
	collectOrderHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/collect_order"
	createMenuItemHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/create_menu_item"
	createOrderHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/create_order"
	deleteMenuItemHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/delete_menu_item"
	generateCommissionsHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/generate_commissions"
	getCanteenOrdersHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_canteen_orders"
	getCommissionsHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_commissions"
	getMenuHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_menu"
	getMenuItemHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_menu_item"
	getOrderHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_order"
	getPendingOwnersHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_pending_owners"
	getStudentOrdersHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/get_student_orders"
	setMenuAvailabilityHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/set_menu_availability"
	toggleFavoriteHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/toggle_favorite"
	updateMenuItemHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/update_menu_item"
	updateOrderStatusHandler "github.com/m04kA/SC-CanteenService/internal/api/handlers/update_order_status"
	"github.com/m04kA/SC-CanteenService/internal/api/middleware"
	"github.com/m04kA/SC-CanteenService/internal/config"
	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/infra/cache/menucache"
	"github.com/m04kA/SC-CanteenService/internal/infra/events"
	commissionRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/commission"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
	orderRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/order"
	profileRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/profile"
	paymentsClient "github.com/m04kA/SC-CanteenService/internal/integrations/payments"
	commissionsService "github.com/m04kA/SC-CanteenService/internal/service/commissions"
	menuService "github.com/m04kA/SC-CanteenService/internal/service/menu"
	ordersService "github.com/m04kA/SC-CanteenService/internal/service/orders"
	ownersService "github.com/m04kA/SC-CanteenService/internal/service/owners"
	checkAvailabilityUC "github.com/m04kA/SC-CanteenService/internal/usecase/check_availability"
	checkoutUC "github.com/m04kA/SC-CanteenService/internal/usecase/checkout"
	"github.com/m04kA/SC-CanteenService/pkg/authtoken"
	"github.com/m04kA/SC-CanteenService/pkg/dbmetrics"
	"github.com/m04kA/SC-CanteenService/pkg/logger"
	"github.com/m04kA/SC-CanteenService/pkg/metrics"
	"github.com/m04kA/SC-CanteenService/pkg/simpletxmanager"
	"github.com/m04kA/SC-CanteenService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SC-CanteenService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Кеш меню (если включен)
	var menuCache menuService.MenuCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		menuCache = menucache.New(redisClient, time.Duration(cfg.Redis.MenuTTLSecond)*time.Second)
		log.Info("Menu cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.MenuTTLSecond)
	}

	// Публикация событий заказов (если включена)
	var publisher *events.Publisher
	if cfg.Events.Enabled {
		publisher, err = events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer publisher.Close()
		log.Info("Order events enabled (exchange=%s)", cfg.Events.Exchange)
	}

	// Платежный шлюз (если включен)
	var gateway *paymentsClient.Client
	if cfg.Payments.Enabled {
		gateway, err = paymentsClient.NewClient(
			cfg.Payments.PublicKey,
			cfg.Payments.SecretKey,
			cfg.Payments.Currency,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize payment gateway: %v", err)
		}
		log.Info("Payment gateway enabled (currency=%s)", cfg.Payments.Currency)
	}

	// JWT аутентификация
	tokens := authtoken.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// Инициализируем репозитории (с метриками или без)
	var (
		menuRepository       *menuRepo.Repository
		orderRepository      *orderRepo.Repository
		profileRepository    *profileRepo.Repository
		commissionRepository *commissionRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		menuRepository = menuRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		profileRepository = profileRepo.NewRepository(wrappedDB)
		commissionRepository = commissionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		menuRepository = menuRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		profileRepository = profileRepo.NewRepository(db)
		commissionRepository = commissionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Интеграции допускают nil, собираем интерфейсные значения явно
	var orderPublisher ordersService.EventPublisher
	var checkoutPublisher checkoutUC.EventPublisher
	if publisher != nil {
		orderPublisher = publisher
		checkoutPublisher = publisher
	}
	var checkoutGateway checkoutUC.PaymentsClient
	if gateway != nil {
		checkoutGateway = gateway
	}

	// Инициализируем сервисы
	menuSvc := menuService.NewService(menuRepository, menuCache, log)
	ordersSvc := ordersService.NewService(orderRepository, profileRepository, orderPublisher, txMgr, log)
	ownersSvc := ownersService.NewService(profileRepository, log)
	commissionsSvc := commissionsService.NewService(
		commissionRepository,
		profileRepository,
		domain.DefaultCommissionRate,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		menuRepository,
		orderRepository,
		cfg.Booking.FailOpen(),
		log,
	)
	checkoutUseCase := checkoutUC.NewUseCase(
		menuRepository,
		orderRepository,
		checkoutGateway,
		checkoutPublisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createOrder := createOrderHandler.NewHandler(checkoutUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	getStudentOrders := getStudentOrdersHandler.NewHandler(ordersSvc, log)
	getCanteenOrders := getCanteenOrdersHandler.NewHandler(ordersSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(ordersSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(ordersSvc, log)
	collectOrder := collectOrderHandler.NewHandler(ordersSvc, log)
	getMenu := getMenuHandler.NewHandler(menuSvc, log)
	getMenuItem := getMenuItemHandler.NewHandler(menuSvc, log)
	createMenuItem := createMenuItemHandler.NewHandler(menuSvc, log)
	updateMenuItem := updateMenuItemHandler.NewHandler(menuSvc, log)
	deleteMenuItem := deleteMenuItemHandler.NewHandler(menuSvc, log)
	setMenuAvailability := setMenuAvailabilityHandler.NewHandler(menuSvc, log)
	toggleFavorite := toggleFavoriteHandler.NewHandler(menuSvc, log)
	getPendingOwners := getPendingOwnersHandler.NewHandler(ownersSvc, log)
	approveOwner := approveOwnerHandler.NewHandler(ownersSvc, log)
	getCommissions := getCommissionsHandler.NewHandler(commissionsSvc, log)
	generateCommissions := generateCommissionsHandler.NewHandler(commissionsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слота экрана
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens))

	// --- Меню ---
	// Список меню с флагами избранного
	protected.HandleFunc("/menu", getMenu.Handle).Methods(http.MethodGet)

	// Позиция меню по ID
	protected.HandleFunc("/menu/{itemId}", getMenuItem.Handle).Methods(http.MethodGet)

	// Избранное студента
	protected.HandleFunc("/menu/{itemId}/favorite", toggleFavorite.Handle).Methods(http.MethodPost)

	// --- Заказы ---
	// Оформление заказа
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// История заказов студента
	protected.HandleFunc("/orders/my", getStudentOrders.Handle).Methods(http.MethodGet)

	// Заказ по ID
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)

	// Отмена заказа
	protected.HandleFunc("/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)

	// --- Управление меню (владельцы и админы) ---
	management := protected.PathPrefix("").Subrouter()
	management.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	management.HandleFunc("/menu", createMenuItem.Handle).Methods(http.MethodPost)
	management.HandleFunc("/menu/{itemId}", updateMenuItem.Handle).Methods(http.MethodPut)
	management.HandleFunc("/menu/{itemId}", deleteMenuItem.Handle).Methods(http.MethodDelete)
	management.HandleFunc("/menu/{itemId}/availability", setMenuAvailability.Handle).Methods(http.MethodPatch)

	// --- Выдача и лента заказов (персонал столовой) ---
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	staff.HandleFunc("/canteen/orders", getCanteenOrders.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/orders/collect", collectOrder.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)

	// --- Комиссии (владельцы видят свои, админы все) ---
	commissions := protected.PathPrefix("").Subrouter()
	commissions.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	commissions.HandleFunc("/admin/commissions", getCommissions.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/owners/pending", getPendingOwners.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/owners/{ownerId}", approveOwner.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/commissions/generate", generateCommissions.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
