package cmd

import (
	"fmt"

	"tabela/internal/infrastructure/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the tabela schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := newMigration(cmd)
		if err != nil {
			return err
		}
		if err := m.Up(); err != nil {
			return err
		}
		log.Info("migrations applied", "source", m.SourceURL())
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := newMigration(cmd)
		if err != nil {
			return err
		}
		if err := m.Down(); err != nil {
			return err
		}
		log.Info("migrations rolled back", "source", m.SourceURL())
		return nil
	},
}

func newMigration(cmd *cobra.Command) (*migration.Migration, error) {
	db, err := resolveDatabase(cmd, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	return migration.NewMigration(db, cfg.DB.Migrations, nil), nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
