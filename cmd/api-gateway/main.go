package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/smartcampus/scs-api/api/swagger"
	"github.com/smartcampus/scs-api/internal/handler"
	"github.com/smartcampus/scs-api/internal/middleware"
	"github.com/smartcampus/scs-api/internal/repository"
	"github.com/smartcampus/scs-api/internal/service"
	"github.com/smartcampus/scs-api/pkg/cache"
	"github.com/smartcampus/scs-api/pkg/config"
	"github.com/smartcampus/scs-api/pkg/database"
	"github.com/smartcampus/scs-api/pkg/jobs"
	"github.com/smartcampus/scs-api/pkg/logger"
	corsmiddleware "github.com/smartcampus/scs-api/pkg/middleware/cors"
	reqidmiddleware "github.com/smartcampus/scs-api/pkg/middleware/requestid"
	"github.com/smartcampus/scs-api/pkg/random"
	"github.com/smartcampus/scs-api/pkg/storage"
)

// @title Smart Campus Scheduling API
// @version 1.0.0
// @description Timetable generation, substitution and exam seating for academic departments.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var catalogCache *cache.Store
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
	} else {
		catalogCache = cache.NewStore(redisClient)
		defer redisClient.Close() //nolint:errcheck
	}

	archive, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("export storage init failed", "error", err)
	}

	validate := validator.New()

	teacherRepo := repository.NewTeacherRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)

	metricsSvc := service.NewMetricsService()

	notificationSvc := service.NewNotificationService(notificationRepo, nil, logr)
	queue := jobs.NewQueue("notifications", notificationSvc.Dispatch, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	queue.Start(context.Background())
	defer queue.Stop()
	notificationSvc = service.NewNotificationService(notificationRepo, queue, logr)

	var catalogSvc *service.CatalogService
	if catalogCache != nil {
		catalogSvc = service.NewCatalogService(teacherRepo, classroomRepo, timeSlotRepo, catalogCache, cfg.Catalog.CacheTTL, logr)
	} else {
		catalogSvc = service.NewCatalogService(teacherRepo, classroomRepo, timeSlotRepo, nil, cfg.Catalog.CacheTTL, logr)
	}
	timetableSvc := service.NewTimetableService(catalogSvc, timetableRepo, notificationSvc, random.New(), cfg.Scheduler.FillProbability, validate, logr)
	substitutionSvc := service.NewSubstitutionService(timetableRepo, teacherRepo, notificationSvc, validate, logr)
	seatingSvc := service.NewSeatingService(studentRepo, classroomRepo, departmentRepo, random.New(), validate, logr)
	absenceSvc := service.NewAbsenceService(absenceRepo, teacherRepo, substitutionSvc, catalogSvc, validate, logr)
	exportSvc := service.NewExportService(timetableRepo, archive, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, catalogSvc, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, catalogSvc, validate, logr)
	timeSlotSvc := service.NewTimeSlotService(timeSlotRepo, catalogSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, validate, logr)

	timetableHandler := handler.NewTimetableHandler(timetableSvc, metricsSvc)
	substitutionHandler := handler.NewSubstitutionHandler(substitutionSvc, metricsSvc)
	seatingHandler := handler.NewSeatingHandler(seatingSvc, metricsSvc)
	exportHandler := handler.NewExportHandler(exportSvc, metricsSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	departmentHandler := handler.NewDepartmentHandler(departmentSvc)
	absenceHandler := handler.NewAbsenceHandler(absenceSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/timetable/generate", timetableHandler.Generate)
		api.POST("/timetable/save", timetableHandler.Save)
		api.GET("/timetable", timetableHandler.List)

		api.GET("/substitution/candidates", substitutionHandler.Candidates)
		api.POST("/substitution/apply", substitutionHandler.Apply)

		api.POST("/seating/generate", seatingHandler.Generate)

		api.GET("/exports/timetable.csv", exportHandler.TimetableCSV)
		api.GET("/exports/timetable.pdf", exportHandler.TimetablePDF)
		api.POST("/exports/seating.csv", exportHandler.SeatingCSV)

		api.GET("/teachers", teacherHandler.List)
		api.POST("/teachers", teacherHandler.Create)
		api.GET("/teachers/:id", teacherHandler.Get)
		api.PUT("/teachers/:id", teacherHandler.Update)
		api.DELETE("/teachers/:id", teacherHandler.Delete)

		api.GET("/classrooms", classroomHandler.List)
		api.POST("/classrooms", classroomHandler.Create)
		api.GET("/classrooms/:id", classroomHandler.Get)
		api.PUT("/classrooms/:id", classroomHandler.Update)
		api.DELETE("/classrooms/:id", classroomHandler.Delete)

		api.GET("/timeslots", timeSlotHandler.List)
		api.POST("/timeslots", timeSlotHandler.Create)
		api.PUT("/timeslots/:id", timeSlotHandler.Update)
		api.PATCH("/timeslots/:id/active", timeSlotHandler.SetActive)
		api.DELETE("/timeslots/:id", timeSlotHandler.Delete)

		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.GET("/students/:id", studentHandler.Get)
		api.PUT("/students/:id", studentHandler.Update)
		api.DELETE("/students/:id", studentHandler.Delete)

		api.GET("/departments", departmentHandler.List)
		api.POST("/departments", departmentHandler.Create)
		api.GET("/departments/:id", departmentHandler.Get)
		api.PUT("/departments/:id", departmentHandler.Update)
		api.DELETE("/departments/:id", departmentHandler.Delete)
		api.GET("/departments/:id/sections", departmentHandler.ListSections)
		api.POST("/departments/:id/sections", departmentHandler.CreateSection)

		api.GET("/absences", absenceHandler.List)
		api.POST("/absences", absenceHandler.MarkAbsent)
		api.POST("/absences/handle", absenceHandler.Handle)
		api.DELETE("/absences/teacher/:teacherId", absenceHandler.ClearAbsent)

		api.GET("/notifications", notificationHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
