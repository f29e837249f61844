package cmd

import (
	"fmt"

	"Inshpho/cache"
	"Inshpho/logger"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Check the Redis connection",
	Long:  `Connect to Redis and run a set/get/del round trip on a scratch key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Redis: %s, DB: %d\n", cfg.RedisAddr(), cfg.RedisDB)

		client, err := cache.ConnectRedis(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close Redis client", logger.ErrorField(err))
			}
		}()
		fmt.Println("Connected.")

		if err := cache.CheckRedis(cmd.Context(), client); err != nil {
			return err
		}
		fmt.Println("Read/write check passed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
