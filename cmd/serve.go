package cmd

import (
	"database/sql"
	"net"

	"github.com/notewell/ms-notes-auth/app/controller"
	"github.com/notewell/ms-notes-auth/app/middleware"
	"github.com/notewell/ms-notes-auth/app/repository"
	"github.com/notewell/ms-notes-auth/app/service"
	"github.com/notewell/ms-notes-auth/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server exposing the token endpoints.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	verifier := service.NewCredentialVerifier(userRepo)
	generator := service.NewTokenGenerator(cfg)
	validator := service.NewTokenValidator(cfg)
	issuer := service.NewTokenIssuer(verifier, generator, refreshTokenRepo)

	startHTTPServer(cfg, issuer, validator)
}

func startHTTPServer(cfg *config.Config, issuer *service.TokenIssuer, validator *service.TokenValidator) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	tokenController := controller.NewTokenController(issuer, validator)
	authMiddleware := middleware.NewAuthMiddleware(validator)

	token := e.Group("/api/v1/token")
	token.POST("", tokenController.GetToken)
	token.POST("/refresh", tokenController.RefreshToken)
	token.POST("/validate", tokenController.ValidateToken)

	tokenProtected := token.Group("")
	tokenProtected.Use(authMiddleware.RequireAuth)
	tokenProtected.DELETE("", tokenController.Revoke)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
