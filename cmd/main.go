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
	"github.com/robfig/cron/v3"

	cancelAppointmentHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/create_appointment"
	deleteDayExceptionHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/delete_day_exception"
	getAvailabilityHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/get_availability"
	getDayExceptionHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/get_day_exception"
	getMonthAvailabilityHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/get_month_availability"
	getPublicConfigHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/get_public_config"
	getUserAppointmentsHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/get_user_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/reschedule_appointment"
	setDayExceptionHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/set_day_exception"
	updateBusinessConfigHandler "github.com/m04kA/SHS-AppointmentService/internal/api/handlers/update_business_config"
	"github.com/m04kA/SHS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SHS-AppointmentService/internal/config"
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/appointment"
	exceptionRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/exception"
	notificationlogRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/notificationlog"
	professionalRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/professional"
	scheduleRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
	directoryClient "github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/googlecalendar"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
	"github.com/m04kA/SHS-AppointmentService/internal/scheduling"
	appointmentsService "github.com/m04kA/SHS-AppointmentService/internal/service/appointments"
	exceptionsService "github.com/m04kA/SHS-AppointmentService/internal/service/exceptions"
	remindersService "github.com/m04kA/SHS-AppointmentService/internal/service/reminders"
	scheduleService "github.com/m04kA/SHS-AppointmentService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SHS-AppointmentService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/m04kA/SHS-AppointmentService/internal/usecase/get_availability"
	getMonthAvailabilityUC "github.com/m04kA/SHS-AppointmentService/internal/usecase/get_month_availability"
	"github.com/m04kA/SHS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SHS-AppointmentService/pkg/logger"
	"github.com/m04kA/SHS-AppointmentService/pkg/metrics"
	"github.com/m04kA/SHS-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SHS-AppointmentService/pkg/txmanager"
)

// noHolidays заглушка праздников, когда интеграция с календарём выключена
type noHolidays struct{}

func (noHolidays) IsHoliday(context.Context, time.Time) bool { return false }
func (noHolidays) HolidaysInRange(context.Context, time.Time, time.Time) map[string]bool {
	return map[string]bool{}
}

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

	log.Info("Starting SHS-AppointmentService...")
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	catalog := catalogClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DirectoryService=%s, CatalogService=%s)",
		cfg.DirectoryService.URL, cfg.CatalogService.URL)

	// Google Calendar опционален: без него доступность считается только
	// по локальным записям, а события календарей не создаются
	var calendar *googlecalendar.Client
	if cfg.Calendar.Enabled {
		calendar, err = googlecalendar.NewClient(context.Background(), googlecalendar.Config{
			CredentialsFile:    cfg.Calendar.CredentialsFile,
			CalendarID:         cfg.Calendar.CalendarID,
			HolidaysCalendarID: cfg.Calendar.HolidaysCalendarID,
			ClientID:           cfg.Calendar.ClientID,
			ClientSecret:       cfg.Calendar.ClientSecret,
			RedirectURI:        cfg.Calendar.RedirectURI,
			TimeZone:           cfg.Calendar.TimeZone,
			Timeout:            time.Duration(cfg.Calendar.Timeout) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize Google Calendar client: %v", err)
		}
		log.Info("Google Calendar integration enabled (calendar=%s)", cfg.Calendar.CalendarID)
	}

	var mailer *notify.Notifier
	if cfg.Notifications.Enabled {
		mailer = notify.NewNotifier(
			cfg.Notifications.SendGridKey,
			cfg.Notifications.FromEmail,
			cfg.Notifications.FromName,
			cfg.Notifications.SalonName,
			log,
		)
		log.Info("Email notifications enabled (from=%s)", cfg.Notifications.FromEmail)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointments  *appointmentRepo.Repository
		exceptions    *exceptionRepo.Repository
		professionals *professionalRepo.Repository
		schedules     *scheduleRepo.Repository
		notifLog      *notificationlogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointments = appointmentRepo.NewRepository(wrappedDB)
		exceptions = exceptionRepo.NewRepository(wrappedDB)
		professionals = professionalRepo.NewRepository(wrappedDB)
		schedules = scheduleRepo.NewRepository(wrappedDB)
		notifLog = notificationlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointments = appointmentRepo.NewRepository(db)
		exceptions = exceptionRepo.NewRepository(db)
		professionals = professionalRepo.NewRepository(db)
		schedules = scheduleRepo.NewRepository(db)
		notifLog = notificationlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Сервис расписания салона (кэширует единственную строку конфига)
	scheduleSvc := scheduleService.NewService(schedules, log)

	// Планировщик доступности
	var holidays scheduling.HolidayProvider = noHolidays{}
	var externalBusy scheduling.ExternalBusyProvider
	if calendar != nil {
		holidays = calendar
		externalBusy = calendar
	}
	windows := scheduling.NewWindowResolver(exceptions, holidays)
	busy := scheduling.NewBusyAggregator(appointments, externalBusy, log)
	planner := scheduling.NewPlanner(windows, busy, professionals, scheduleSvc, &scheduling.RealTimeProvider{}, log)

	// Интерфейсы опциональных зависимостей: типизированный nil в интерфейсе
	// сломал бы проверки "!= nil" внутри сервисов
	var createCalendarSync createAppointmentUC.CalendarSync
	var createNotifier createAppointmentUC.Notifier
	var apptCalendarSync appointmentsService.CalendarSync
	var apptNotifier appointmentsService.Notifier
	var excCalendarSync exceptionsService.CalendarSync
	var excNotifier exceptionsService.Notifier
	if calendar != nil {
		createCalendarSync = calendar
		apptCalendarSync = calendar
		excCalendarSync = calendar
	}
	if mailer != nil {
		createNotifier = mailer
		apptNotifier = mailer
		excNotifier = mailer
	}

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointments,
		professionals,
		scheduleSvc,
		planner,
		catalog,
		directory,
		createCalendarSync,
		createNotifier,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(planner, catalog, log)
	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(planner, catalog, log)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointments,
		professionals,
		scheduleSvc,
		planner,
		directory,
		apptCalendarSync,
		apptNotifier,
		notifLog,
		txMgr,
		log,
	)
	exceptionsSvc := exceptionsService.NewService(
		exceptions,
		appointments,
		professionals,
		scheduleSvc,
		directory,
		excCalendarSync,
		excNotifier,
		notifLog,
		log,
	)

	// Периодический обход напоминаний
	var reminderCron *cron.Cron
	if cfg.Reminders.Enabled {
		if mailer == nil {
			log.Warn("Reminders enabled but notifications are disabled, sweep will be skipped")
		} else {
			remindersSvc := remindersService.NewService(appointments, notifLog, directory, mailer, log)
			reminderCron = cron.New()
			if _, err := reminderCron.AddFunc(cfg.Reminders.Schedule, func() {
				remindersSvc.Sweep(context.Background())
			}); err != nil {
				log.Fatal("Failed to schedule reminder sweep: %v", err)
			}
			reminderCron.Start()
			log.Info("Reminder sweep scheduled (%s, windows: %v)", cfg.Reminders.Schedule, domain.ReminderTypes)
		}
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	getPublicConfig := getPublicConfigHandler.NewHandler(scheduleSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(appointmentsSvc, log)
	getDayException := getDayExceptionHandler.NewHandler(exceptionsSvc, log)
	setDayException := setDayExceptionHandler.NewHandler(exceptionsSvc, log)
	deleteDayException := deleteDayExceptionHandler.NewHandler(exceptionsSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на день
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Статусы дней месяца
	api.HandleFunc("/availability-month", getMonthAvailability.Handle).Methods(http.MethodGet)

	// Публичная конфигурация салона
	api.HandleFunc("/config", getPublicConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPut)

	// --- Исключения расписания профессионала ---
	protected.HandleFunc("/exceptions", getDayException.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/exceptions", setDayException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/exceptions", deleteDayException.Handle).Methods(http.MethodDelete)

	// --- Администрирование ---
	protected.HandleFunc("/admin/config", updateBusinessConfig.Handle).Methods(http.MethodPut)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if reminderCron != nil {
		<-reminderCron.Stop().Done()
		log.Info("Reminder sweep stopped")
	}

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
