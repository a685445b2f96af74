package librarycontent_test

import (
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/queries/librarycontent"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
)

func TestItems_MergesAllSources(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	upload := fx.CreateContent(ctx, models.ContentItem{Title: "Compo", AssignedTo: "all", URL: "https://example.com/c.pdf"})
	fx.CreateDriveFile(ctx, models.DriveFile{Name: "Matchs", Type: models.DriveFolder})
	file := fx.CreateDriveFile(ctx, models.DriveFile{Name: "Plan.pdf", Type: models.DriveDocument})
	video := fx.CreateVideo(ctx, models.Video{Title: "J3", Month: "september-2025", AssignedTo: []string{"p1"}})

	items, err := librarycontent.Items(ctx, db)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items (folder skipped), got %d", len(items))
	}

	byID := map[string]models.ContentItem{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if _, ok := byID[upload.ID]; !ok {
		t.Error("expected upload in library")
	}
	if got, ok := byID["gdrive-"+file.ID.Hex()]; !ok || got.AssignedTo != models.AssignAll {
		t.Errorf("unexpected drive item %+v", got)
	}
	if got, ok := byID["vimeo-"+video.ID.Hex()]; !ok || got.AssignedTo != models.AssignPlayers || got.MatchNumber != "september-2025" {
		t.Errorf("unexpected video item %+v", got)
	}
}

func TestLoadSources_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	src, err := librarycontent.LoadSources(ctx, db)
	if err != nil {
		t.Fatalf("LoadSources failed: %v", err)
	}
	if len(src.Uploads)+len(src.Drive)+len(src.Videos) != 0 {
		t.Errorf("expected empty sources, got %+v", src)
	}
}
