package main

import (
	"context"
	"fmt"
	"os"
	"time"

	intconfig "devcamper/internal/config"
	"devcamper/internal/geocoder"
	"devcamper/internal/repositories"
	"devcamper/internal/seeder"
	"devcamper/internal/utils"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seeder:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataDir string
		timeout time.Duration
		doImp   bool
		doDel   bool
	)

	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Load or wipe the sample bootcamp and course data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case doImp && doDel:
				return fmt.Errorf("-i and -d are mutually exclusive")
			case doImp:
				return run(cmd.Context(), dataDir, timeout, importData)
			case doDel:
				return run(cmd.Context(), dataDir, timeout, destroyData)
			default:
				return cmd.Help()
			}
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "_data", "directory holding bootcamps.json and courses.json")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall time allowed for the run")
	root.Flags().BoolVarP(&doImp, "import", "i", false, "import the sample data")
	root.Flags().BoolVarP(&doDel, "destroy", "d", false, "delete all bootcamps and courses")

	root.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Import the sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), dataDir, timeout, importData)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "destroy",
		Short: "Delete all bootcamps and courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), dataDir, timeout, destroyData)
		},
	})
	return root
}

type action func(ctx context.Context, s seeder.Seeder) (seeder.Result, error)

func importData(ctx context.Context, s seeder.Seeder) (seeder.Result, error) { return s.Import(ctx) }

func destroyData(ctx context.Context, s seeder.Seeder) (seeder.Result, error) { return s.Destroy(ctx) }

func run(parent context.Context, dataDir string, timeout time.Duration, act action) error {
	if parent == nil {
		parent = context.Background()
	}
	env := intconfig.LoadEnv()
	log := utils.NewLogger(env.IsDevelopment())

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	client, err := intconfig.ConnectMongo(ctx, env)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to MongoDB")
		return err
	}
	defer func() {
		if err := intconfig.CloseMongo(client); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB client")
		}
	}()
	db := intconfig.Database(client, env)

	s := seeder.Seeder{
		Data:      os.DirFS(dataDir),
		Bootcamps: repositories.NewBootcampRepository(db),
		Courses:   repositories.NewCourseRepository(db),
		Log:       log,
	}
	if env.GeocoderAPIKey != "" {
		s.Geocoder = geocoder.NewMapQuest(env.GeocoderBaseURL, env.GeocoderAPIKey, env.GeocoderRetryMax, log)
	}

	if _, err := act(ctx, s); err != nil {
		log.Error().Err(err).Msg("seeder failed")
		return err
	}
	return nil
}

