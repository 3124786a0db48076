// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/alfanumrik/ent/collectionrecord"
)

// CollectionRecordCreate is the builder for creating a CollectionRecord entity.
type CollectionRecordCreate struct {
	config
	mutation *CollectionRecordMutation
	hooks    []Hook
}

// SetPartition sets the "partition" field.
func (_c *CollectionRecordCreate) SetPartition(v string) *CollectionRecordCreate {
	_c.mutation.SetPartition(v)
	return _c
}

// SetRecordID sets the "record_id" field.
func (_c *CollectionRecordCreate) SetRecordID(v string) *CollectionRecordCreate {
	_c.mutation.SetRecordID(v)
	return _c
}

// SetOwnerID sets the "owner_id" field.
func (_c *CollectionRecordCreate) SetOwnerID(v int64) *CollectionRecordCreate {
	_c.mutation.SetOwnerID(v)
	return _c
}

// SetNillableOwnerID sets the "owner_id" field if the given value is not nil.
func (_c *CollectionRecordCreate) SetNillableOwnerID(v *int64) *CollectionRecordCreate {
	if v != nil {
		_c.SetOwnerID(*v)
	}
	return _c
}

// SetValue sets the "value" field.
func (_c *CollectionRecordCreate) SetValue(v []byte) *CollectionRecordCreate {
	_c.mutation.SetValue(v)
	return _c
}

// SetCreatedAt sets the "created_at" field.
func (_c *CollectionRecordCreate) SetCreatedAt(v time.Time) *CollectionRecordCreate {
	_c.mutation.SetCreatedAt(v)
	return _c
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_c *CollectionRecordCreate) SetNillableCreatedAt(v *time.Time) *CollectionRecordCreate {
	if v != nil {
		_c.SetCreatedAt(*v)
	}
	return _c
}

// Mutation returns the CollectionRecordMutation object of the builder.
func (_c *CollectionRecordCreate) Mutation() *CollectionRecordMutation {
	return _c.mutation
}

// Save creates the CollectionRecord in the database.
func (_c *CollectionRecordCreate) Save(ctx context.Context) (*CollectionRecord, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *CollectionRecordCreate) SaveX(ctx context.Context) *CollectionRecord {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *CollectionRecordCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *CollectionRecordCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *CollectionRecordCreate) defaults() {
	if _, ok := _c.mutation.OwnerID(); !ok {
		v := collectionrecord.DefaultOwnerID
		_c.mutation.SetOwnerID(v)
	}
	if _, ok := _c.mutation.CreatedAt(); !ok {
		v := collectionrecord.DefaultCreatedAt()
		_c.mutation.SetCreatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *CollectionRecordCreate) check() error {
	if _, ok := _c.mutation.Partition(); !ok {
		return &ValidationError{Name: "partition", err: errors.New(`ent: missing required field "CollectionRecord.partition"`)}
	}
	if v, ok := _c.mutation.Partition(); ok {
		if err := collectionrecord.PartitionValidator(v); err != nil {
			return &ValidationError{Name: "partition", err: fmt.Errorf(`ent: validator failed for field "CollectionRecord.partition": %w`, err)}
		}
	}
	if _, ok := _c.mutation.RecordID(); !ok {
		return &ValidationError{Name: "record_id", err: errors.New(`ent: missing required field "CollectionRecord.record_id"`)}
	}
	if v, ok := _c.mutation.RecordID(); ok {
		if err := collectionrecord.RecordIDValidator(v); err != nil {
			return &ValidationError{Name: "record_id", err: fmt.Errorf(`ent: validator failed for field "CollectionRecord.record_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.OwnerID(); !ok {
		return &ValidationError{Name: "owner_id", err: errors.New(`ent: missing required field "CollectionRecord.owner_id"`)}
	}
	if _, ok := _c.mutation.Value(); !ok {
		return &ValidationError{Name: "value", err: errors.New(`ent: missing required field "CollectionRecord.value"`)}
	}
	if _, ok := _c.mutation.CreatedAt(); !ok {
		return &ValidationError{Name: "created_at", err: errors.New(`ent: missing required field "CollectionRecord.created_at"`)}
	}
	return nil
}

func (_c *CollectionRecordCreate) sqlSave(ctx context.Context) (*CollectionRecord, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *CollectionRecordCreate) createSpec() (*CollectionRecord, *sqlgraph.CreateSpec) {
	var (
		_node = &CollectionRecord{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(collectionrecord.Table, sqlgraph.NewFieldSpec(collectionrecord.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Partition(); ok {
		_spec.SetField(collectionrecord.FieldPartition, field.TypeString, value)
		_node.Partition = value
	}
	if value, ok := _c.mutation.RecordID(); ok {
		_spec.SetField(collectionrecord.FieldRecordID, field.TypeString, value)
		_node.RecordID = value
	}
	if value, ok := _c.mutation.OwnerID(); ok {
		_spec.SetField(collectionrecord.FieldOwnerID, field.TypeInt64, value)
		_node.OwnerID = value
	}
	if value, ok := _c.mutation.Value(); ok {
		_spec.SetField(collectionrecord.FieldValue, field.TypeBytes, value)
		_node.Value = value
	}
	if value, ok := _c.mutation.CreatedAt(); ok {
		_spec.SetField(collectionrecord.FieldCreatedAt, field.TypeTime, value)
		_node.CreatedAt = value
	}
	return _node, _spec
}

// CollectionRecordCreateBulk is the builder for creating many CollectionRecord entities in bulk.
type CollectionRecordCreateBulk struct {
	config
	err      error
	builders []*CollectionRecordCreate
}

// Save creates the CollectionRecord entities in the database.
func (_c *CollectionRecordCreateBulk) Save(ctx context.Context) ([]*CollectionRecord, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*CollectionRecord, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*CollectionRecordMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *CollectionRecordCreateBulk) SaveX(ctx context.Context) []*CollectionRecord {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *CollectionRecordCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *CollectionRecordCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
