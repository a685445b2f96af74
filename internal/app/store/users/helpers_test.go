package userstore_test

import (
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/indexes"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func ensureIndexes(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
}
