// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/alfanumrik/ent/collectionrecord"
	"github.com/abhisek/alfanumrik/ent/predicate"
)

// CollectionRecordUpdate is the builder for updating CollectionRecord entities.
type CollectionRecordUpdate struct {
	config
	hooks    []Hook
	mutation *CollectionRecordMutation
}

// Where appends a list predicates to the CollectionRecordUpdate builder.
func (_u *CollectionRecordUpdate) Where(ps ...predicate.CollectionRecord) *CollectionRecordUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetValue sets the "value" field.
func (_u *CollectionRecordUpdate) SetValue(v []byte) *CollectionRecordUpdate {
	_u.mutation.SetValue(v)
	return _u
}

// Mutation returns the CollectionRecordMutation object of the builder.
func (_u *CollectionRecordUpdate) Mutation() *CollectionRecordMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *CollectionRecordUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *CollectionRecordUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *CollectionRecordUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *CollectionRecordUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *CollectionRecordUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(collectionrecord.Table, collectionrecord.Columns, sqlgraph.NewFieldSpec(collectionrecord.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Value(); ok {
		_spec.SetField(collectionrecord.FieldValue, field.TypeBytes, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{collectionrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// CollectionRecordUpdateOne is the builder for updating a single CollectionRecord entity.
type CollectionRecordUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *CollectionRecordMutation
}

// SetValue sets the "value" field.
func (_u *CollectionRecordUpdateOne) SetValue(v []byte) *CollectionRecordUpdateOne {
	_u.mutation.SetValue(v)
	return _u
}

// Mutation returns the CollectionRecordMutation object of the builder.
func (_u *CollectionRecordUpdateOne) Mutation() *CollectionRecordMutation {
	return _u.mutation
}

// Where appends a list predicates to the CollectionRecordUpdate builder.
func (_u *CollectionRecordUpdateOne) Where(ps ...predicate.CollectionRecord) *CollectionRecordUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *CollectionRecordUpdateOne) Select(field string, fields ...string) *CollectionRecordUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated CollectionRecord entity.
func (_u *CollectionRecordUpdateOne) Save(ctx context.Context) (*CollectionRecord, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *CollectionRecordUpdateOne) SaveX(ctx context.Context) *CollectionRecord {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *CollectionRecordUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *CollectionRecordUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *CollectionRecordUpdateOne) sqlSave(ctx context.Context) (_node *CollectionRecord, err error) {
	_spec := sqlgraph.NewUpdateSpec(collectionrecord.Table, collectionrecord.Columns, sqlgraph.NewFieldSpec(collectionrecord.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "CollectionRecord.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, collectionrecord.FieldID)
		for _, f := range fields {
			if !collectionrecord.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != collectionrecord.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Value(); ok {
		_spec.SetField(collectionrecord.FieldValue, field.TypeBytes, value)
	}
	_node = &CollectionRecord{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{collectionrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
