package cmd

import (
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"tabela/internal/app/server/config"
	"tabela/internal/infrastructure/cloud"
	"tabela/internal/utils/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	envFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tabela-server",
	Short: "Tabela - CRUD HTTP service for the tabela table",
	Long: `tabela-server exposes create, list, update and delete over the
"tabela" table (PostgreSQL or SQLite) and relays JSON submissions to S3
with an SES notification.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}

	var err error
	cfg, err = config.Load(viper.New())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = logger.NewWithLevel(cfg.Env, cfg.Logger.LogLevel)
	return nil
}

// resolveDatabase picks the backend, reaching Secrets Manager only when a
// secret id is configured.
func resolveDatabase(cmd *cobra.Command, clients *cloud.Clients) (config.Database, error) {
	var secrets config.SecretReader
	if cfg.DB.CredsSecretID != "" {
		if clients == nil {
			var err error
			if clients, err = cloud.NewClients(cmd.Context(), cfg.AWS); err != nil {
				return config.Database{}, err
			}
		}
		secrets = cloud.NewSecretReader(clients.Secrets)
	}
	return cfg.DB.Resolve(cmd.Context(), secrets)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}
