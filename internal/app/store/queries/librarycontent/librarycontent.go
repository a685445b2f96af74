// internal/app/store/queries/librarycontent/librarycontent.go
package librarycontent

import (
	"context"
	"fmt"

	contentstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/content"
	drivefilestore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/drivefiles"
	videostore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/videos"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoadSources reads the three collections that feed the library:
// content_items, drive_files (files only), and videos.
func LoadSources(ctx context.Context, db *mongo.Database) (catalog.Sources, error) {
	uploads, err := contentstore.New(db).List(ctx)
	if err != nil {
		return catalog.Sources{}, fmt.Errorf("load uploads: %w", err)
	}
	drive, err := drivefilestore.New(db).ListFiles(ctx)
	if err != nil {
		return catalog.Sources{}, fmt.Errorf("load drive files: %w", err)
	}
	videos, err := videostore.New(db).List(ctx)
	if err != nil {
		return catalog.Sources{}, fmt.Errorf("load videos: %w", err)
	}
	return catalog.Sources{Uploads: uploads, Drive: drive, Videos: videos}, nil
}

// Items returns the merged, unfiltered library. Callers must pass the
// result through contentpolicy before showing it to anyone.
func Items(ctx context.Context, db *mongo.Database) ([]models.ContentItem, error) {
	src, err := LoadSources(ctx, db)
	if err != nil {
		return nil, err
	}
	return catalog.Merge(src), nil
}
