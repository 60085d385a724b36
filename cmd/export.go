package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"movie-discovery/pkg/services"
)

// newExportCmd creates a new command for exporting a browse snapshot
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export a browse snapshot",
		Long: `Export the categories with the trending, popular and upcoming lists in the specified
format. Currently supported formats: json. With --bucket the snapshot is uploaded to
Google Cloud Storage instead of printed.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}

			snap, err := services.GetSnapshot(cmd.Context())
			if err != nil {
				fmt.Printf("Error building snapshot: %v\n", err)
				os.Exit(1)
			}

			var buf bytes.Buffer
			if err := services.WriteSnapshot(&buf, format, snap); err != nil {
				if errors.Is(err, services.ErrUnsupportedFormat) {
					fmt.Printf("Unsupported export format: %s\n", format)
					fmt.Println("Supported formats: json")
				} else {
					fmt.Printf("Error marshaling data: %v\n", err)
				}
				os.Exit(1)
			}

			if cfg.ExportBucket == "" {
				fmt.Print(buf.String())
				return
			}

			object := services.ExportObjectName(snap.GeneratedAt)
			if err := services.UploadExport(cmd.Context(), cfg.ExportBucket, object, buf.Bytes()); err != nil {
				fmt.Printf("Error uploading export: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Uploaded gs://%s/%s\n", cfg.ExportBucket, object)
		},
	}
}

// newListExportsCmd creates a new command for listing uploaded snapshots
func newListExportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-exports",
		Short: "List uploaded snapshots",
		Long:  `List the snapshots previously uploaded to the export bucket.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			if cfg.ExportBucket == "" {
				fmt.Println("Error: EXPORT_BUCKET not set")
				os.Exit(1)
			}

			objects, err := services.ListExports(cmd.Context(), cfg.ExportBucket)
			if err != nil {
				fmt.Printf("Error listing exports: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Exports in %s:\n", cfg.ExportBucket)
			fmt.Println("================")
			for _, obj := range objects {
				fmt.Printf("%s  %8d bytes  %s\n", obj.Name, obj.Size, obj.Created.Format(time.RFC3339))
			}
			fmt.Printf("\nTotal: %d exports\n", len(objects))
		},
	}
}
