package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/models"
)

// ExportPrefix is the object prefix exports are written under
const ExportPrefix = "exports/"

// ErrUnsupportedFormat is returned for an export format other than json
var ErrUnsupportedFormat = errors.New("unsupported export format")

// SnapshotSource is the set of list calls a snapshot needs
type SnapshotSource interface {
	Trending(ctx context.Context) ([]models.TitleSummary, error)
	Popular(ctx context.Context) ([]models.TitleSummary, error)
	DiscoverUpcoming(ctx context.Context, from time.Time) ([]models.TitleSummary, error)
}

// Snapshot is the exported state of the browse lists
type Snapshot struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Categories  []config.Category     `json:"categories"`
	Trending    []models.TitleSummary `json:"trending"`
	Popular     []models.TitleSummary `json:"popular"`
	Upcoming    []models.TitleSummary `json:"upcoming"`
}

// ExportObject describes one stored export
type ExportObject struct {
	Name    string
	Size    int64
	Created time.Time
}

// BuildSnapshot fetches the trending, popular and upcoming lists
// concurrently and waits for all three. Upcoming starts the day after now.
func BuildSnapshot(ctx context.Context, src SnapshotSource, categories []config.Category, now time.Time) (Snapshot, error) {
	snap := Snapshot{GeneratedAt: now.UTC(), Categories: categories}
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

	var g errgroup.Group
	g.Go(func() error {
		var err error
		snap.Trending, err = src.Trending(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Popular, err = src.Popular(ctx)
		return err
	})
	g.Go(func() error {
		titles, err := src.DiscoverUpcoming(ctx, tomorrow)
		snap.Upcoming = SortByPopularity(titles)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// WriteSnapshot encodes snap in format to w
func WriteSnapshot(w io.Writer, format string, snap Snapshot) error {
	if format != "json" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ExportObjectName returns the object name for a snapshot taken at t
func ExportObjectName(t time.Time) string {
	return ExportPrefix + "snapshot-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// UploadExport writes data to object in bucket
func UploadExport(ctx context.Context, bucketName, object string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	writer := client.Bucket(bucketName).Object(strings.TrimPrefix(object, "/")).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("Writer.Write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}
	return nil
}

// ListExports returns the exports stored in bucket, oldest first
func ListExports(ctx context.Context, bucketName string) ([]ExportObject, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	var objects []ExportObject
	it := client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: ExportPrefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating exports: %w", err)
		}
		objects = append(objects, ExportObject{Name: attrs.Name, Size: attrs.Size, Created: attrs.Created})
	}
	return objects, nil
}
