package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"movie-discovery/pkg/models"
	"movie-discovery/pkg/render"
	"movie-discovery/pkg/services"
)

// newTrendingCmd creates a new command for listing today's trending titles
func newTrendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "List trending titles",
		Long:  `List today's trending movies in the order the upstream ranks them.`,
		Run: func(cmd *cobra.Command, args []string) {
			initService()
			titles, err := services.GetTrending(cmd.Context())
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			printTitles("Trending Now", titles)
		},
	}
}

// newSearchCmd creates a new command for searching titles
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search titles",
		Long:  `Search movies by title and list the results, most popular first.`,
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				fmt.Println("Error: empty query")
				os.Exit(1)
			}
			initService()
			titles, err := services.SearchTitles(cmd.Context(), query)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			if len(titles) == 0 {
				fmt.Printf("No results found for \"%s\"\n", query)
				return
			}
			printTitles(fmt.Sprintf("Search Results for \"%s\"", query), titles)
		},
	}
}

// newShowTitleCmd creates a new command for showing one title in full
func newShowTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-title [id]",
		Short: "Show details of a title",
		Long:  `Show the synopsis, rating, genres, streaming providers, trailer and cast of a title.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				fmt.Printf("Error: invalid id %q\n", args[0])
				os.Exit(1)
			}
			initService()
			showTitle(cmd.Context(), id)
		},
	}
}

func initService() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	services.InitService(cfg)
}

// printTitles displays a list of titles with year and rating
func printTitles(heading string, titles []models.TitleSummary) {
	fmt.Println(heading)
	fmt.Println(strings.Repeat("=", len(heading)))

	for i, title := range titles {
		fmt.Printf("%d. %s (%s) [id %d]\n", i+1, title.Title, render.ReleaseYear(title.ReleaseDate), title.ID)
		if title.VoteAverage != nil {
			fmt.Printf("   Rating: %s\n", render.FormatRating(*title.VoteAverage))
		}
	}

	fmt.Printf("\nTotal: %d titles\n", len(titles))
}

// showTitle displays the aggregated detail of a title
func showTitle(ctx context.Context, id int) {
	detail, err := services.GetTitle(ctx, id)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Title: %s\n", detail.Title)
	fmt.Printf("Rating: %s\n", render.FormatRating(detail.VoteAverage))
	fmt.Printf("Genres: %s\n", strings.Join(detail.Genres, ", "))
	if len(detail.WatchProviders) == 0 {
		fmt.Printf("Streaming: %s\n", render.NoProviders)
	} else {
		fmt.Printf("Streaming: %s\n", strings.Join(detail.WatchProviders, ", "))
	}
	if detail.TrailerURL == nil {
		fmt.Printf("Trailer: %s\n", render.NoTrailer)
	} else {
		fmt.Printf("Trailer: %s\n", *detail.TrailerURL)
	}
	fmt.Println("================")
	fmt.Println(detail.Overview)
	fmt.Println()

	for _, member := range detail.TopCast {
		fmt.Printf("- %s as %s\n", member.Name, member.Character)
	}
}
