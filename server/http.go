package server

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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ntu-info/emogo-backend-chaudharyinder/config"
	"github.com/ntu-info/emogo-backend-chaudharyinder/constant"
	"github.com/ntu-info/emogo-backend-chaudharyinder/handler"
	"github.com/ntu-info/emogo-backend-chaudharyinder/pkg/videostore"
	"github.com/ntu-info/emogo-backend-chaudharyinder/repository"
	"github.com/ntu-info/emogo-backend-chaudharyinder/service"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := config.NewMongoConn(ctx, &cfg.Mongo)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("NewMongoConn")
	}

	videos, err := newVideoStore(cfg)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("newVideoStore")
	}

	repo := repository.NewRepo(client.Database(cfg.Mongo.Database))
	recordService := service.NewService(repo)
	h := handler.New(recordService, videos)

	r := gin.Default()
	r.Use(cors.Default())
	r.SetHTMLTemplate(handler.Templates())
	addRoutes(r, h, cfg)

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addRoutes(r *gin.Engine, h *handler.Handler, cfg *config.Config) {
	r.GET("/", h.Health)
	r.POST("/record", h.CreateRecord)
	r.GET("/record/:id", h.GetRecord)
	r.DELETE("/record/:id", h.DeleteRecord)
	r.GET("/records", h.ListRecords)
	r.DELETE("/records/cleanup", h.CleanupRecords)
	r.POST("/videos", h.UploadVideo)
	r.GET("/export", h.Dashboard)

	// The minio backend serves assets through presigned URLs instead.
	if cfg.Videos.Backend != "minio" {
		r.Static("/videos", cfg.Videos.Dir)
	}
}

func newVideoStore(cfg *config.Config) (videostore.Store, error) {
	if cfg.Videos.Backend == "minio" {
		return videostore.NewMinIO(cfg.Storage, cfg.MinIOBucket), nil
	}
	return videostore.NewLocal(cfg.Videos.Dir, cfg.Videos.BaseURL)
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
