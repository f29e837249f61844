package cmd

import (
	"fmt"
	"strings"

	"Inshpho/core/news"
	"Inshpho/model"

	"github.com/spf13/cobra"
)

var newsLimit int

var newsCmd = &cobra.Command{
	Use:   "news [category]",
	Short: "Print the live feed or a category feed",
	Long: fmt.Sprintf(`Fetch headlines through the same providers the API proxies.
Without an argument the live feed is shown. Categories: %s.`, strings.Join(news.Categories(), ", ")),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := news.NewServiceFromConfig(cfg)

		var (
			articles []model.Article
			err      error
		)
		if len(args) == 0 {
			articles, err = svc.Live(cmd.Context())
		} else {
			articles, err = svc.Category(cmd.Context(), strings.ToLower(args[0]))
		}
		if err != nil {
			return err
		}

		if newsLimit > 0 && len(articles) > newsLimit {
			articles = articles[:newsLimit]
		}
		for i, a := range articles {
			fmt.Printf("%2d. %s\n", i+1, a.Title)
			if a.Source != "" {
				fmt.Printf("    %s\n", a.Source)
			}
			fmt.Printf("    %s\n", a.URL)
		}
		if len(articles) == 0 {
			fmt.Println("No articles.")
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().IntVarP(&newsLimit, "limit", "n", 10, "maximum number of articles to print (0 for all)")
	rootCmd.AddCommand(newsCmd)
}
