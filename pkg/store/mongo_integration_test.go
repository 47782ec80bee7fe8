//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// Run with: PODOC_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/store
func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("PODOC_MONGO_URI")
	if uri == "" {
		t.Skip("PODOC_MONGO_URI not set")
	}
	ctx := context.Background()

	s, err := ConnectMongo(ctx, MongoOptions{URI: uri, Database: "podoc_test", Collection: t.Name()})
	if err != nil {
		t.Fatalf("ConnectMongo: %v", err)
	}
	t.Cleanup(func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close(ctx)
	})

	_, err = s.coll.InsertOne(ctx, bson.M{
		"po_number":     "PO-IT-1",
		"supplier_name": "CV B",
		"items":         bson.A{bson.M{"item_name": "Pasir", "quantity": 1.0}},
		"subsidiary":    bson.M{"name": "PT A"},
	})
	if err != nil {
		t.Fatalf("InsertOne: %v", err)
	}

	doc, err := s.FindDocument(ctx, "PO-IT-1")
	if err != nil {
		t.Fatalf("FindDocument: %v", err)
	}
	if doc.Issuer.Name != "PT A" || doc.Counterparty.Name != "CV B" || len(doc.Order.Items) != 1 {
		t.Errorf("doc = %+v", doc)
	}

	if _, err := s.FindDocument(ctx, "PO-IT-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing order: error = %v", err)
	}
}
