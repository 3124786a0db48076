package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/alfanumrik/ent"
	"github.com/abhisek/alfanumrik/ent/collectionrecord"
	"github.com/google/uuid"
)

// CollectionRecord is one entry in a collection partition. Value is opaque
// to the store; callers encode their own record type into it.
type CollectionRecord struct {
	ID        string
	OwnerID   int64
	Value     []byte
	CreatedAt time.Time
}

// Filter narrows a collection scan using the declared owner index.
// A zero OwnerID scans the whole partition.
type Filter struct {
	OwnerID int64
}

// CollectionRepo provides append, scan and overwrite-by-id access to
// collection partitions.
type CollectionRepo interface {
	// Append stores rec and returns its id. An empty rec.ID is replaced by a
	// generated one. Returns ErrDuplicate when the id already exists.
	Append(ctx context.Context, p Partition, rec CollectionRecord) (string, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, p Partition, id string) (*CollectionRecord, error)

	// Query scans the partition (or one owner's slice of it) in insertion
	// order and keeps the records for which pred returns true. A nil pred
	// keeps everything.
	Query(ctx context.Context, p Partition, f Filter, pred func(CollectionRecord) bool) ([]CollectionRecord, error)

	// UpdateByID overwrites the value of an existing record.
	UpdateByID(ctx context.Context, p Partition, id string, value []byte) error
}

// collectionRepo implements CollectionRepo using the ent client.
type collectionRepo struct {
	client *ent.Client
}

func (r *collectionRepo) Append(ctx context.Context, p Partition, rec CollectionRecord) (string, error) {
	if !p.IsCollection() {
		return "", fmt.Errorf("append to %s: %w", p, ErrWrongPartition)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	builder := r.client.CollectionRecord.Create().
		SetPartition(string(p)).
		SetRecordID(rec.ID).
		SetOwnerID(rec.OwnerID).
		SetValue(rec.Value)
	if !rec.CreatedAt.IsZero() {
		builder = builder.SetCreatedAt(rec.CreatedAt)
	}

	if _, err := builder.Save(ctx); err != nil {
		if ent.IsConstraintError(err) {
			return "", fmt.Errorf("append %s/%s: %w", p, rec.ID, ErrDuplicate)
		}
		return "", fmt.Errorf("append %s/%s: %w", p, rec.ID, err)
	}
	return rec.ID, nil
}

func (r *collectionRepo) Get(ctx context.Context, p Partition, id string) (*CollectionRecord, error) {
	if !p.IsCollection() {
		return nil, fmt.Errorf("get from %s: %w", p, ErrWrongPartition)
	}

	row, err := r.client.CollectionRecord.Query().
		Where(collectionrecord.Partition(string(p)), collectionrecord.RecordID(id)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query %s/%s: %w", p, id, err)
	}
	rec := toCollectionRecord(row)
	return &rec, nil
}

func (r *collectionRepo) Query(ctx context.Context, p Partition, f Filter, pred func(CollectionRecord) bool) ([]CollectionRecord, error) {
	if !p.IsCollection() {
		return nil, fmt.Errorf("query %s: %w", p, ErrWrongPartition)
	}

	q := r.client.CollectionRecord.Query().
		Where(collectionrecord.Partition(string(p)))
	if f.OwnerID != 0 {
		q = q.Where(collectionrecord.OwnerID(f.OwnerID))
	}

	rows, err := q.Order(ent.Asc(collectionrecord.FieldID)).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p, err)
	}

	out := make([]CollectionRecord, 0, len(rows))
	for _, row := range rows {
		rec := toCollectionRecord(row)
		if pred == nil || pred(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *collectionRepo) UpdateByID(ctx context.Context, p Partition, id string, value []byte) error {
	if !p.IsCollection() {
		return fmt.Errorf("update %s/%s: %w", p, id, ErrWrongPartition)
	}

	n, err := r.client.CollectionRecord.Update().
		Where(collectionrecord.Partition(string(p)), collectionrecord.RecordID(id)).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", p, id, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s/%s: %w", p, id, ErrNotFound)
	}
	return nil
}

func toCollectionRecord(row *ent.CollectionRecord) CollectionRecord {
	return CollectionRecord{
		ID:        row.RecordID,
		OwnerID:   row.OwnerID,
		Value:     row.Value,
		CreatedAt: row.CreatedAt,
	}
}
