// Code generated by ent, DO NOT EDIT.

package document

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/alfanumrik/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.Document {
	return predicate.Document(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.Document {
	return predicate.Document(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.Document {
	return predicate.Document(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.Document {
	return predicate.Document(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.Document {
	return predicate.Document(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.Document {
	return predicate.Document(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.Document {
	return predicate.Document(sql.FieldLTE(FieldID, id))
}

// Partition applies equality check predicate on the "partition" field. It's identical to PartitionEQ.
func Partition(v string) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldPartition, v))
}

// DocKey applies equality check predicate on the "doc_key" field. It's identical to DocKeyEQ.
func DocKey(v string) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldDocKey, v))
}

// Value applies equality check predicate on the "value" field. It's identical to ValueEQ.
func Value(v []byte) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldValue, v))
}

// UpdatedAt applies equality check predicate on the "updated_at" field. It's identical to UpdatedAtEQ.
func UpdatedAt(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldUpdatedAt, v))
}

// PartitionEQ applies the EQ predicate on the "partition" field.
func PartitionEQ(v string) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldPartition, v))
}

// PartitionNEQ applies the NEQ predicate on the "partition" field.
func PartitionNEQ(v string) predicate.Document {
	return predicate.Document(sql.FieldNEQ(FieldPartition, v))
}

// PartitionIn applies the In predicate on the "partition" field.
func PartitionIn(vs ...string) predicate.Document {
	return predicate.Document(sql.FieldIn(FieldPartition, vs...))
}

// PartitionNotIn applies the NotIn predicate on the "partition" field.
func PartitionNotIn(vs ...string) predicate.Document {
	return predicate.Document(sql.FieldNotIn(FieldPartition, vs...))
}

// PartitionGT applies the GT predicate on the "partition" field.
func PartitionGT(v string) predicate.Document {
	return predicate.Document(sql.FieldGT(FieldPartition, v))
}

// PartitionGTE applies the GTE predicate on the "partition" field.
func PartitionGTE(v string) predicate.Document {
	return predicate.Document(sql.FieldGTE(FieldPartition, v))
}

// PartitionLT applies the LT predicate on the "partition" field.
func PartitionLT(v string) predicate.Document {
	return predicate.Document(sql.FieldLT(FieldPartition, v))
}

// PartitionLTE applies the LTE predicate on the "partition" field.
func PartitionLTE(v string) predicate.Document {
	return predicate.Document(sql.FieldLTE(FieldPartition, v))
}

// PartitionContains applies the Contains predicate on the "partition" field.
func PartitionContains(v string) predicate.Document {
	return predicate.Document(sql.FieldContains(FieldPartition, v))
}

// PartitionHasPrefix applies the HasPrefix predicate on the "partition" field.
func PartitionHasPrefix(v string) predicate.Document {
	return predicate.Document(sql.FieldHasPrefix(FieldPartition, v))
}

// PartitionHasSuffix applies the HasSuffix predicate on the "partition" field.
func PartitionHasSuffix(v string) predicate.Document {
	return predicate.Document(sql.FieldHasSuffix(FieldPartition, v))
}

// PartitionEqualFold applies the EqualFold predicate on the "partition" field.
func PartitionEqualFold(v string) predicate.Document {
	return predicate.Document(sql.FieldEqualFold(FieldPartition, v))
}

// PartitionContainsFold applies the ContainsFold predicate on the "partition" field.
func PartitionContainsFold(v string) predicate.Document {
	return predicate.Document(sql.FieldContainsFold(FieldPartition, v))
}

// DocKeyEQ applies the EQ predicate on the "doc_key" field.
func DocKeyEQ(v string) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldDocKey, v))
}

// DocKeyNEQ applies the NEQ predicate on the "doc_key" field.
func DocKeyNEQ(v string) predicate.Document {
	return predicate.Document(sql.FieldNEQ(FieldDocKey, v))
}

// DocKeyIn applies the In predicate on the "doc_key" field.
func DocKeyIn(vs ...string) predicate.Document {
	return predicate.Document(sql.FieldIn(FieldDocKey, vs...))
}

// DocKeyNotIn applies the NotIn predicate on the "doc_key" field.
func DocKeyNotIn(vs ...string) predicate.Document {
	return predicate.Document(sql.FieldNotIn(FieldDocKey, vs...))
}

// DocKeyGT applies the GT predicate on the "doc_key" field.
func DocKeyGT(v string) predicate.Document {
	return predicate.Document(sql.FieldGT(FieldDocKey, v))
}

// DocKeyGTE applies the GTE predicate on the "doc_key" field.
func DocKeyGTE(v string) predicate.Document {
	return predicate.Document(sql.FieldGTE(FieldDocKey, v))
}

// DocKeyLT applies the LT predicate on the "doc_key" field.
func DocKeyLT(v string) predicate.Document {
	return predicate.Document(sql.FieldLT(FieldDocKey, v))
}

// DocKeyLTE applies the LTE predicate on the "doc_key" field.
func DocKeyLTE(v string) predicate.Document {
	return predicate.Document(sql.FieldLTE(FieldDocKey, v))
}

// DocKeyContains applies the Contains predicate on the "doc_key" field.
func DocKeyContains(v string) predicate.Document {
	return predicate.Document(sql.FieldContains(FieldDocKey, v))
}

// DocKeyHasPrefix applies the HasPrefix predicate on the "doc_key" field.
func DocKeyHasPrefix(v string) predicate.Document {
	return predicate.Document(sql.FieldHasPrefix(FieldDocKey, v))
}

// DocKeyHasSuffix applies the HasSuffix predicate on the "doc_key" field.
func DocKeyHasSuffix(v string) predicate.Document {
	return predicate.Document(sql.FieldHasSuffix(FieldDocKey, v))
}

// DocKeyEqualFold applies the EqualFold predicate on the "doc_key" field.
func DocKeyEqualFold(v string) predicate.Document {
	return predicate.Document(sql.FieldEqualFold(FieldDocKey, v))
}

// DocKeyContainsFold applies the ContainsFold predicate on the "doc_key" field.
func DocKeyContainsFold(v string) predicate.Document {
	return predicate.Document(sql.FieldContainsFold(FieldDocKey, v))
}

// ValueEQ applies the EQ predicate on the "value" field.
func ValueEQ(v []byte) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldValue, v))
}

// ValueNEQ applies the NEQ predicate on the "value" field.
func ValueNEQ(v []byte) predicate.Document {
	return predicate.Document(sql.FieldNEQ(FieldValue, v))
}

// ValueIn applies the In predicate on the "value" field.
func ValueIn(vs ...[]byte) predicate.Document {
	return predicate.Document(sql.FieldIn(FieldValue, vs...))
}

// ValueNotIn applies the NotIn predicate on the "value" field.
func ValueNotIn(vs ...[]byte) predicate.Document {
	return predicate.Document(sql.FieldNotIn(FieldValue, vs...))
}

// ValueGT applies the GT predicate on the "value" field.
func ValueGT(v []byte) predicate.Document {
	return predicate.Document(sql.FieldGT(FieldValue, v))
}

// ValueGTE applies the GTE predicate on the "value" field.
func ValueGTE(v []byte) predicate.Document {
	return predicate.Document(sql.FieldGTE(FieldValue, v))
}

// ValueLT applies the LT predicate on the "value" field.
func ValueLT(v []byte) predicate.Document {
	return predicate.Document(sql.FieldLT(FieldValue, v))
}

// ValueLTE applies the LTE predicate on the "value" field.
func ValueLTE(v []byte) predicate.Document {
	return predicate.Document(sql.FieldLTE(FieldValue, v))
}

// UpdatedAtEQ applies the EQ predicate on the "updated_at" field.
func UpdatedAtEQ(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldEQ(FieldUpdatedAt, v))
}

// UpdatedAtNEQ applies the NEQ predicate on the "updated_at" field.
func UpdatedAtNEQ(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldNEQ(FieldUpdatedAt, v))
}

// UpdatedAtIn applies the In predicate on the "updated_at" field.
func UpdatedAtIn(vs ...time.Time) predicate.Document {
	return predicate.Document(sql.FieldIn(FieldUpdatedAt, vs...))
}

// UpdatedAtNotIn applies the NotIn predicate on the "updated_at" field.
func UpdatedAtNotIn(vs ...time.Time) predicate.Document {
	return predicate.Document(sql.FieldNotIn(FieldUpdatedAt, vs...))
}

// UpdatedAtGT applies the GT predicate on the "updated_at" field.
func UpdatedAtGT(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldGT(FieldUpdatedAt, v))
}

// UpdatedAtGTE applies the GTE predicate on the "updated_at" field.
func UpdatedAtGTE(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldGTE(FieldUpdatedAt, v))
}

// UpdatedAtLT applies the LT predicate on the "updated_at" field.
func UpdatedAtLT(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldLT(FieldUpdatedAt, v))
}

// UpdatedAtLTE applies the LTE predicate on the "updated_at" field.
func UpdatedAtLTE(v time.Time) predicate.Document {
	return predicate.Document(sql.FieldLTE(FieldUpdatedAt, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.Document) predicate.Document {
	return predicate.Document(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.Document) predicate.Document {
	return predicate.Document(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.Document) predicate.Document {
	return predicate.Document(sql.NotPredicates(p))
}
