package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/USQVE/bleprint/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	uri := os.Getenv("BLEPRINT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BLEPRINT_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, Config{URI: uri, Database: "bleprint_test", Collection: "graphs_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close()
	}()

	storetest.Run(t, s)
}
