package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"BBS-backend/docs"
	"BBS-backend/internal/attendance"
	"BBS-backend/internal/cashflow"
	"BBS-backend/internal/dashboard"
	"BBS-backend/internal/lessons"
	"BBS-backend/internal/platform/config"
	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/logging"
	"BBS-backend/internal/platform/web"
	"BBS-backend/internal/schedules"
	"BBS-backend/internal/schools"
	"BBS-backend/internal/students"
	"BBS-backend/internal/teachers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "path to the yaml config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.Mode, cfg.LogLevel)
	log.WithFields(log.Fields{"mode": cfg.Mode, "version": cfg.Version}).Info("starting")

	if err := web.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("failed to register validators")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	conn, err := db.Connect(ctx, cfg.DB)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer conn.Close()
	log.WithField("db", cfg.DB.DBName).Info("connected to database")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logging.RequestLogger(cfg.Server.RequestTimeout), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == config.ModeDev {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logging.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Location", logging.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		if err := conn.PingContext(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	docs.SwaggerInfo.Version = cfg.Version
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	schoolSvc := schools.NewService(conn)
	teacherSvc := teachers.NewService(conn)
	studentSvc := students.NewService(conn)
	lessonSvc := lessons.NewService(conn)
	scheduleSvc := schedules.NewService(conn)
	attendanceSvc := attendance.NewService(conn)
	cashflowSvc := cashflow.NewService(conn)

	api := r.Group("/api/v1")
	schools.RegisterRoutes(api, schoolSvc)
	teachers.RegisterRoutes(api, teacherSvc)
	students.RegisterRoutes(api, studentSvc)
	lessons.RegisterRoutes(api, lessonSvc)
	schedules.RegisterRoutes(api, scheduleSvc)
	attendance.RegisterRoutes(api, attendanceSvc)
	cashflow.RegisterRoutes(api, cashflowSvc)
	dashboard.RegisterRoutes(api, dashboard.NewService(dashboard.Sources{
		Schools:    schoolSvc,
		Teachers:   teacherSvc,
		Students:   studentSvc,
		Lessons:    lessonSvc,
		Schedules:  scheduleSvc,
		Attendance: attendanceSvc,
		Cashflow:   cashflowSvc,
	}))

	if cfg.Server.StaticDir != "" {
		r.NoRoute(spaHandler(os.DirFS(cfg.Server.StaticDir)))
		log.WithField("dir", cfg.Server.StaticDir).Info("serving static dashboard")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listen := srv.ListenAndServe
	if cfg.TLSEnabled() {
		listen = func() error { return srv.ListenAndServeTLS(cfg.Certificate.Cert, cfg.Certificate.Key) }
	}
	log.WithFields(log.Fields{"addr": srv.Addr, "tls": cfg.TLSEnabled()}).Info("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	if err := serve(srv, listen, quit); err != nil {
		// Fatal skips defers
		conn.Close()
		log.WithError(err).Fatal("server stopped")
	}
}

// serve runs listen until it fails or quit fires, then drains srv. It returns
// on the calling goroutine so main's deferred cleanup still runs.
func serve(srv *http.Server, listen func() error, quit <-chan os.Signal) error {
	errc := make(chan error, 1)
	go func() { errc <- listen() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// spaHandler serves files from fsys and falls back to index.html so that
// client-side routes resolve. /api/ paths are never rewritten.
func spaHandler(fsys fs.FS) gin.HandlerFunc {
	fileFS := http.FS(fsys)
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			web.WriteError(c, web.ErrNotFound("route not found"))
			return
		}

		reqPath := strings.TrimPrefix(c.Request.URL.Path, "/")
		if reqPath == "" {
			reqPath = "index.html"
		}

		if f, err := fileFS.Open(reqPath); err == nil {
			defer f.Close()
			if info, err := f.Stat(); err == nil && !info.IsDir() {
				if ct := mime.TypeByExtension(path.Ext(reqPath)); ct != "" {
					c.Header("Content-Type", ct)
				}
				// hashed build assets never change; index.html must revalidate
				if !strings.HasSuffix(reqPath, "index.html") {
					c.Header("Cache-Control", "public, max-age=86400, immutable")
				}
				http.ServeContent(c.Writer, c.Request, reqPath, info.ModTime(), f)
				return
			}
		}

		idx, err := fileFS.Open("index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		defer idx.Close()
		info, err := idx.Stat()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(c.Writer, c.Request, "index.html", info.ModTime(), idx)
	}
}
