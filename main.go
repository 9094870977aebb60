// @title AquaSure API
// @version 1.0
// @description Water quality monitoring: samples, SPC charts, QC tools and risk predictions.
// @BasePath /
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"p9e.in/aquasure/alerts"
	"p9e.in/aquasure/archive"
	"p9e.in/aquasure/config"
	"p9e.in/aquasure/handlers"
	"p9e.in/aquasure/ingest"
	"p9e.in/aquasure/metrics"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/routes"
	"p9e.in/aquasure/services"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	root := &cobra.Command{
		Use:   "aquasure",
		Short: "Water quality monitoring service",
	}

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), scoreCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed demo samples when the database is empty")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Connect(config.Load())
			if err := config.Migrations(config.DB); err != nil {
				return fmt.Errorf("could not run migrations: %w", err)
			}
			log.Println("✅ Migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		nonCompliant int
		location     string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Connect(config.Load())
			if err := config.Migrations(config.DB); err != nil {
				return fmt.Errorf("could not run migrations: %w", err)
			}
			if nonCompliant > 0 {
				return config.SeedNonCompliantSamples(cmd.Context(), config.DB, nonCompliant, location)
			}
			return config.RunAllSeeding(cmd.Context(), config.DB)
		},
	}
	cmd.Flags().IntVar(&nonCompliant, "noncompliant", 0, "Insert this many non-compliant demo samples instead of the baseline set")
	cmd.Flags().StringVar(&location, "location", config.DefaultSeedLocation, "Location for non-compliant samples")
	return cmd
}

func scoreCmd() *cobra.Command {
	var r quality.Reading
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one reading without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := struct {
				quality.Result
				Compliance quality.Compliance `json:"compliance"`
			}{quality.ComputeQualityIndex(r), quality.EvaluateCompliance(r)}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&r.PH, "ph", 7.0, "pH")
	f.Float64Var(&r.TDS, "tds", 0, "Total dissolved solids (mg/L)")
	f.Float64Var(&r.Turbidity, "turbidity", 0, "Turbidity (NTU)")
	f.Float64Var(&r.Chlorine, "chlorine", 0.5, "Free chlorine (mg/L)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version:   %s\n", Version)
			fmt.Printf("BuildTime: %s\n", BuildTime)
		},
	}
}

func serve(seed bool) error {
	settings := config.Load()
	config.Connect(settings)

	if err := config.Migrations(config.DB); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if seed {
		if err := config.RunAllSeeding(ctx, config.DB); err != nil {
			log.Printf("Warning: seeding encountered issues: %v", err)
		}
	}

	m := metrics.NewMetrics()
	sampleRepo := repository.NewSampleRepository(config.DB)
	locationRepo := repository.NewLocationRepository(config.DB)
	chartRepo := repository.NewChartRepository(config.DB)
	predictionRepo := repository.NewPredictionRepository(config.DB)

	var publisher services.AlertPublisher
	if len(settings.KafkaBrokers) > 0 {
		kp := alerts.NewKafkaPublisher(settings.KafkaBrokers, settings.KafkaAlertTopic)
		defer kp.Close()
		publisher = kp
		log.Printf("📣 Publishing risk alerts to %s", settings.KafkaAlertTopic)
	}

	var archiver handlers.Archiver
	if settings.GCSBucket != "" {
		a, err := archive.NewArchiver(ctx, settings.GCSBucket)
		if err != nil {
			return fmt.Errorf("create archiver: %w", err)
		}
		defer a.Close()
		archiver = a
	}

	sampleSvc := services.NewSampleService(sampleRepo, locationRepo, m, settings.SampleQueryLimit)
	spcSvc := services.NewSPCService(sampleRepo, chartRepo, m, settings.SampleQueryLimit)
	qcSvc := services.NewQCService(sampleRepo, locationRepo, settings.SampleQueryLimit)
	predictionSvc := services.NewPredictionService(sampleRepo, predictionRepo, publisher, m)

	if settings.MQTTBroker != "" {
		sub := ingest.NewSubscriber(settings.MQTTBroker, settings.MQTTClientID, settings.MQTTTopic, sampleSvc)
		if err := sub.Start(); err != nil {
			return fmt.Errorf("start mqtt ingest: %w", err)
		}
		defer sub.Stop()
	}

	handler := routes.RegisterRoutes(routes.Handlers{
		Samples:     handlers.NewSampleHandler(sampleSvc, archiver),
		Locations:   handlers.NewLocationHandler(sampleSvc),
		SPC:         handlers.NewSPCHandler(spcSvc, archiver),
		QC:          handlers.NewQCHandler(qcSvc),
		Predictions: handlers.NewPredictionHandler(predictionSvc),
	}, routes.Options{
		CORSOrigin: settings.CORSOrigin,
		APIKeys:    settings.APIKeys,
		Metrics:    m,
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Println("Server starting at port", settings.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
