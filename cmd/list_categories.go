package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"movie-discovery/pkg/services"
)

// newListCategoriesCmd creates a new command for listing categories
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List the category bar",
		Long:  `List every category of the category bar with its genre id.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			listCategories()
		},
	}
}

// listCategories displays the configured categories
func listCategories() {
	categories := services.GetCategories()

	fmt.Println("Categories:")
	fmt.Println("===========")

	for _, category := range categories {
		if category.GenreID == 0 {
			fmt.Printf("%s (popular)\n", category.Name)
			continue
		}
		fmt.Printf("%s (genre %d)\n", category.Name, category.GenreID)
	}

	fmt.Printf("\nTotal: %d categories\n", len(categories))
}
