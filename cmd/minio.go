package cmd

import (
	"fmt"
	"time"

	"Inshpho/storage"

	"github.com/spf13/cobra"
)

var (
	minioPrefix string
	minioStats  bool
	minioDelete bool
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Inspect the blog image bucket",
	Long:  `List objects in the MinIO bucket, print usage statistics, or delete everything under a prefix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.MinioEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is not set")
		}
		fmt.Printf("MinIO: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		store, err := storage.NewMinioStore(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := store.EnsureBucket(ctx); err != nil {
			return err
		}

		switch {
		case minioDelete:
			if minioPrefix == "" {
				return fmt.Errorf("--delete needs --prefix")
			}
			n, err := store.DeletePrefix(ctx, minioPrefix)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d objects under %s\n", n, minioPrefix)
		case minioStats:
			stats, err := store.Stats(ctx, minioPrefix)
			if err != nil {
				return err
			}
			fmt.Printf("Objects:       %d\n", stats.TotalObjects)
			fmt.Printf("Total size:    %s\n", storage.FormatSize(stats.TotalSize))
			if !stats.LastModified.IsZero() {
				fmt.Printf("Last modified: %s\n", stats.LastModified.Format(time.RFC3339))
			}
		default:
			objects, err := store.List(ctx, minioPrefix)
			if err != nil {
				return err
			}
			for _, obj := range objects {
				fmt.Printf("%-60s %10s  %s\n", obj.Key, storage.FormatSize(obj.Size), obj.LastModified.Format(time.RFC3339))
			}
			fmt.Printf("%d objects\n", len(objects))
		}
		return nil
	},
}

func init() {
	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "object key prefix, e.g. blogs/")
	minioCmd.Flags().BoolVarP(&minioStats, "stats", "s", false, "print bucket statistics")
	minioCmd.Flags().BoolVarP(&minioDelete, "delete", "d", false, "delete every object under --prefix")
	rootCmd.AddCommand(minioCmd)
}
