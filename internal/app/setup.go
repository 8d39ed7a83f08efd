package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jejakkarbon/plantid/internal/store"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the history table for the postgres store driver",
	Long:  "Creates the user_histories table and its user_id index. The firebase driver needs no setup beyond database rules.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if driver := viper.GetString("store.driver"); driver != store.DriverPostgres {
			return fmt.Errorf("setup only applies to the postgres store driver (configured: %q)", driver)
		}

		ctx := context.Background()

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()

		pg, err := store.NewPostgresStore(ctx, viper.GetString("database.url"), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pg.Close()

		fmt.Println("Running migrations...")
		if err := pg.Migrate(ctx); err != nil {
			return err
		}

		fmt.Println("✓ Database setup complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
