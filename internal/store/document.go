package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/alfanumrik/ent"
	"github.com/abhisek/alfanumrik/ent/document"
)

// DocumentRepo stores singleton values addressed by (partition, key).
type DocumentRepo interface {
	// GetDocument returns the stored bytes, or ErrNotFound.
	GetDocument(ctx context.Context, p Partition, key string) ([]byte, error)

	// PutDocument creates or overwrites the value. Last write wins.
	PutDocument(ctx context.Context, p Partition, key string, value []byte) error
}

// documentRepo implements DocumentRepo using the ent client.
type documentRepo struct {
	client *ent.Client
}

func (r *documentRepo) GetDocument(ctx context.Context, p Partition, key string) ([]byte, error) {
	if !p.IsDocument() {
		return nil, fmt.Errorf("get %s/%s: %w", p, key, ErrWrongPartition)
	}

	d, err := r.client.Document.Query().
		Where(document.Partition(string(p)), document.DocKey(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query document %s/%s: %w", p, key, err)
	}
	return d.Value, nil
}

func (r *documentRepo) PutDocument(ctx context.Context, p Partition, key string, value []byte) error {
	if !p.IsDocument() {
		return fmt.Errorf("put %s/%s: %w", p, key, ErrWrongPartition)
	}

	n, err := r.client.Document.Update().
		Where(document.Partition(string(p)), document.DocKey(key)).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update document %s/%s: %w", p, key, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.Document.Create().
		SetPartition(string(p)).
		SetDocKey(key).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create document %s/%s: %w", p, key, err)
	}
	return nil
}

// GetJSON loads and decodes a JSON document. It returns (nil, nil) when the
// document does not exist.
func GetJSON[T any](ctx context.Context, docs DocumentRepo, p Partition, key string) (*T, error) {
	raw, err := docs.GetDocument(ctx, p, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", p, key, err)
	}
	return &v, nil
}

// PutJSON encodes v as JSON and stores it.
func PutJSON[T any](ctx context.Context, docs DocumentRepo, p Partition, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", p, key, err)
	}
	return docs.PutDocument(ctx, p, key, raw)
}
