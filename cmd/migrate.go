package cmd

import (
	"fmt"

	"Inshpho/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users table in MySQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Connecting to MySQL %s:%s/%s...\n", cfg.DBHost, cfg.DBPort, cfg.DBName)
		gdb, err := db.ConnectGormDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
		fmt.Println("Schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
