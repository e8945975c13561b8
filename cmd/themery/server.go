// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/db"
	"github.com/thatcatcamp/themery/internal/handlers"
	"github.com/thatcatcamp/themery/internal/logger"
	"github.com/thatcatcamp/themery/internal/metrics"
	"github.com/thatcatcamp/themery/internal/middleware"
	"github.com/thatcatcamp/themery/internal/publish"
	"github.com/thatcatcamp/themery/internal/session"
	"github.com/thatcatcamp/themery/internal/themes"
	"github.com/thatcatcamp/themery/internal/tls"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the Themery HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		log, err := newLogger()
		exitOnError(err)

		recorder, err := newRecorder()
		exitOnError(err)
		defer db.Close()

		exitOnError(runServer(cmd.Context(), log, recorder))
	},
}

// routerOptions collects everything newRouter wires together
type routerOptions struct {
	Handler   *handlers.Handler
	Metrics   *metrics.Metrics
	Log       *logger.Logger
	Limiter   *middleware.RateLimiter
	Blocked   []string
	Secure    bool
	HTTPSPort string
	Redirect  bool
}

func newRouter(opts routerOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(gin.Recovery())
	r.Use(opts.Metrics.Middleware())
	r.Use(middleware.SecurityHeadersMiddleware(opts.Secure))

	if opts.Redirect {
		r.Use(middleware.HTTPSRedirectMiddleware(opts.HTTPSPort))
	}

	blocked, invalid := middleware.ParseBlocklist(opts.Blocked)
	for _, entry := range invalid {
		opts.Log.WithFields(map[string]any{"entry": entry}).Warn("ignoring invalid server.blocked_ips entry")
	}
	if len(blocked) > 0 {
		r.Use(middleware.IPFilterMiddleware(blocked))
	}

	// System routes
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/themes")
	})

	if opts.Limiter != nil {
		r.Use(middleware.RateLimitMiddleware(opts.Limiter, "/themes/export", "/themes/config"))
	}

	opts.Handler.PageMiddleware = append(opts.Handler.PageMiddleware, middleware.CSRFMiddleware(opts.Secure))
	opts.Handler.Register(r)

	return r
}

func runServer(parent context.Context, log *logger.Logger, recorder *analytics.Recorder) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.GetString("log.level") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	defaults := themes.DefaultExportConfig().
		WithTheme(config.GetString("site.default_theme")).
		WithRadius(config.GetFloat("site.default_radius"))

	tlsEnabled := config.GetBool("tls.enabled")
	secure := tlsEnabled || config.GetBool("session.secure")

	sessions := session.NewStore(session.Options{
		Secret:     config.GetString("session.secret"),
		CookieName: config.GetString("session.cookie_name"),
		TTL:        config.GetDuration("session.ttl"),
		Secure:     secure,
		Defaults:   defaults,
	})

	m := metrics.New()
	h, err := handlers.New(sessions, recorder, m, log, config.GetString("site.base_url"))
	if err != nil {
		return err
	}
	h.DefaultRadius = defaults.Radius

	limiter := middleware.NewRateLimiter(config.GetInt("ratelimit.requests"), config.GetDuration("ratelimit.window"))
	defer limiter.Stop()

	r := newRouter(routerOptions{
		Handler:   h,
		Metrics:   m,
		Log:       log,
		Limiter:   limiter,
		Blocked:   config.GetStringSlice("server.blocked_ips"),
		Secure:    tlsEnabled,
		HTTPSPort: config.GetString("server.https_port"),
		Redirect:  tlsEnabled && !config.GetBool("server.behind_proxy"),
	})

	// Periodic static publish, when configured
	if interval := config.GetDuration("publish.interval"); interval > 0 {
		target, err := publishTarget(ctx, config.GetString("publish.dir"), false)
		if err != nil {
			return err
		}
		scheduler := publish.NewScheduler(&publish.Publisher{
			Target:        target,
			Concurrency:   config.GetInt("publish.concurrency"),
			DefaultRadius: defaults.Radius,
			Recorder:      recorder,
			Metrics:       m,
			Log:           log,
		}, interval)
		schedulerDone := scheduler.Start(ctx)
		log.WithFields(map[string]any{"interval": interval.String(), "target": target.String()}).Info("publish scheduler started")
		defer func() {
			scheduler.Stop()
			<-schedulerDone
		}()
	}

	var servers []*http.Server
	errs := make(chan error, 2)

	httpAddr := ":" + config.GetString("server.http_port")
	httpSrv := &http.Server{Addr: httpAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	if tlsEnabled {
		tlsCfg, err := tls.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load TLS config: %w", err)
		}
		tlsManager, err := tls.NewManager(tlsCfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize TLS manager: %w", err)
		}
		defer tlsManager.Stop()
		if err := tlsManager.Start(ctx); err != nil {
			return err
		}

		httpsAddr := ":" + config.GetString("server.https_port")
		httpsSrv := &http.Server{
			Addr:              httpsAddr,
			Handler:           r,
			TLSConfig:         tlsManager.GetTLSConfig(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, httpsSrv)

		go func() {
			log.WithFields(map[string]any{"addr": httpsAddr, "domains": tlsManager.Domains()}).Info("HTTPS server listening")
			if err := httpsSrv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("HTTPS server error: %w", err)
			}
		}()
	}

	// Bind first so port errors surface before we report success
	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP server to %s: %w", httpAddr, err)
	}
	servers = append(servers, httpSrv)

	go func() {
		log.WithFields(map[string]any{"addr": httpAddr, "tls": tlsEnabled}).Info("HTTP server listening")
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration("server.shutdown_timeout"))
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "graceful shutdown failed")
		}
	}

	return runErr
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
