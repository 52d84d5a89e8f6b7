package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreBackend implements Backend with one Firestore document per slot.
// The client is injected so callers own credentials and lifecycle.
type FirestoreBackend struct {
	client     *firestore.Client
	collection string
}

var _ Backend = (*FirestoreBackend)(nil)

// slotDoc is the document layout for a slot. The JSON payload is stored as a
// single blob field; Firestore never interprets it.
type slotDoc struct {
	Value []byte `firestore:"value"`
}

// NewFirestoreBackend creates a Firestore-backed slot store under the given
// collection.
func NewFirestoreBackend(client *firestore.Client, collection string) *FirestoreBackend {
	return &FirestoreBackend{
		client:     client,
		collection: collection,
	}
}

func (f *FirestoreBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	doc, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}

	var slot slotDoc
	if err := doc.DataTo(&slot); err != nil {
		return nil, false, fmt.Errorf("parse slot %s: %w", key, err)
	}
	return slot.Value, true, nil
}

func (f *FirestoreBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := f.client.Collection(f.collection).Doc(key).Set(ctx, slotDoc{Value: value})
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (f *FirestoreBackend) Delete(ctx context.Context, key string) error {
	if _, err := f.client.Collection(f.collection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}
