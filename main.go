package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "devcamper/internal/config"
	"devcamper/internal/geocoder"
	router "devcamper/internal/http"
	"devcamper/internal/repositories"
	"devcamper/internal/services"
	"devcamper/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	log := utils.NewLogger(env.IsDevelopment())

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := intconfig.ConnectMongo(connectCtx, env)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Str("uri", env.MongoURI).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := intconfig.CloseMongo(client); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB client")
		}
	}()
	db := intconfig.Database(client, env)

	bootcampRepo := repositories.NewBootcampRepository(db)
	courseRepo := repositories.NewCourseRepository(db)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	for _, ensure := range []func(context.Context) error{bootcampRepo.EnsureIndexes, courseRepo.EnsureIndexes} {
		if err := ensure(indexCtx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure indexes")
		}
	}
	cancelIndex()

	bootcampSvc := services.BootcampService{
		Bootcamps: bootcampRepo,
		Courses:   courseRepo,
		MaxLimit:  env.MaxPageLimit,
		Now:       utils.NowUTC,
	}
	if env.GeocoderAPIKey != "" {
		bootcampSvc.Geocoder = geocoder.NewMapQuest(env.GeocoderBaseURL, env.GeocoderAPIKey, env.GeocoderRetryMax, log)
	} else {
		log.Warn().Msg("GEOCODER_API_KEY is not set, addresses will not be geocoded")
	}
	courseSvc := services.CourseService{
		Courses:   courseRepo,
		Bootcamps: bootcampRepo,
		MaxLimit:  env.MaxPageLimit,
		Now:       utils.NowUTC,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.NewRouter(router.Deps{
		Env:       env,
		Log:       log,
		Bootcamps: bootcampSvc,
		Courses:   courseSvc,
		Registry:  reg,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Str("env", env.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return
	}

	log.Info().Msg("server stopped")
}
