// Code generated by ent, DO NOT EDIT.

package collectionrecord

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/alfanumrik/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLTE(FieldID, id))
}

// Partition applies equality check predicate on the "partition" field. It's identical to PartitionEQ.
func Partition(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldPartition, v))
}

// RecordID applies equality check predicate on the "record_id" field. It's identical to RecordIDEQ.
func RecordID(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldRecordID, v))
}

// OwnerID applies equality check predicate on the "owner_id" field. It's identical to OwnerIDEQ.
func OwnerID(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldOwnerID, v))
}

// Value applies equality check predicate on the "value" field. It's identical to ValueEQ.
func Value(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldValue, v))
}

// CreatedAt applies equality check predicate on the "created_at" field. It's identical to CreatedAtEQ.
func CreatedAt(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldCreatedAt, v))
}

// PartitionEQ applies the EQ predicate on the "partition" field.
func PartitionEQ(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldPartition, v))
}

// PartitionNEQ applies the NEQ predicate on the "partition" field.
func PartitionNEQ(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNEQ(FieldPartition, v))
}

// PartitionIn applies the In predicate on the "partition" field.
func PartitionIn(vs ...string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldIn(FieldPartition, vs...))
}

// PartitionNotIn applies the NotIn predicate on the "partition" field.
func PartitionNotIn(vs ...string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNotIn(FieldPartition, vs...))
}

// PartitionGT applies the GT predicate on the "partition" field.
func PartitionGT(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGT(FieldPartition, v))
}

// PartitionGTE applies the GTE predicate on the "partition" field.
func PartitionGTE(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGTE(FieldPartition, v))
}

// PartitionLT applies the LT predicate on the "partition" field.
func PartitionLT(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLT(FieldPartition, v))
}

// PartitionLTE applies the LTE predicate on the "partition" field.
func PartitionLTE(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLTE(FieldPartition, v))
}

// PartitionContains applies the Contains predicate on the "partition" field.
func PartitionContains(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldContains(FieldPartition, v))
}

// PartitionHasPrefix applies the HasPrefix predicate on the "partition" field.
func PartitionHasPrefix(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldHasPrefix(FieldPartition, v))
}

// PartitionHasSuffix applies the HasSuffix predicate on the "partition" field.
func PartitionHasSuffix(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldHasSuffix(FieldPartition, v))
}

// PartitionEqualFold applies the EqualFold predicate on the "partition" field.
func PartitionEqualFold(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEqualFold(FieldPartition, v))
}

// PartitionContainsFold applies the ContainsFold predicate on the "partition" field.
func PartitionContainsFold(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldContainsFold(FieldPartition, v))
}

// RecordIDEQ applies the EQ predicate on the "record_id" field.
func RecordIDEQ(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldRecordID, v))
}

// RecordIDNEQ applies the NEQ predicate on the "record_id" field.
func RecordIDNEQ(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNEQ(FieldRecordID, v))
}

// RecordIDIn applies the In predicate on the "record_id" field.
func RecordIDIn(vs ...string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldIn(FieldRecordID, vs...))
}

// RecordIDNotIn applies the NotIn predicate on the "record_id" field.
func RecordIDNotIn(vs ...string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNotIn(FieldRecordID, vs...))
}

// RecordIDGT applies the GT predicate on the "record_id" field.
func RecordIDGT(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGT(FieldRecordID, v))
}

// RecordIDGTE applies the GTE predicate on the "record_id" field.
func RecordIDGTE(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGTE(FieldRecordID, v))
}

// RecordIDLT applies the LT predicate on the "record_id" field.
func RecordIDLT(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLT(FieldRecordID, v))
}

// RecordIDLTE applies the LTE predicate on the "record_id" field.
func RecordIDLTE(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLTE(FieldRecordID, v))
}

// RecordIDContains applies the Contains predicate on the "record_id" field.
func RecordIDContains(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldContains(FieldRecordID, v))
}

// RecordIDHasPrefix applies the HasPrefix predicate on the "record_id" field.
func RecordIDHasPrefix(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldHasPrefix(FieldRecordID, v))
}

// RecordIDHasSuffix applies the HasSuffix predicate on the "record_id" field.
func RecordIDHasSuffix(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldHasSuffix(FieldRecordID, v))
}

// RecordIDEqualFold applies the EqualFold predicate on the "record_id" field.
func RecordIDEqualFold(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEqualFold(FieldRecordID, v))
}

// RecordIDContainsFold applies the ContainsFold predicate on the "record_id" field.
func RecordIDContainsFold(v string) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldContainsFold(FieldRecordID, v))
}

// OwnerIDEQ applies the EQ predicate on the "owner_id" field.
func OwnerIDEQ(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldOwnerID, v))
}

// OwnerIDNEQ applies the NEQ predicate on the "owner_id" field.
func OwnerIDNEQ(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNEQ(FieldOwnerID, v))
}

// OwnerIDIn applies the In predicate on the "owner_id" field.
func OwnerIDIn(vs ...int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldIn(FieldOwnerID, vs...))
}

// OwnerIDNotIn applies the NotIn predicate on the "owner_id" field.
func OwnerIDNotIn(vs ...int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNotIn(FieldOwnerID, vs...))
}

// OwnerIDGT applies the GT predicate on the "owner_id" field.
func OwnerIDGT(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGT(FieldOwnerID, v))
}

// OwnerIDGTE applies the GTE predicate on the "owner_id" field.
func OwnerIDGTE(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGTE(FieldOwnerID, v))
}

// OwnerIDLT applies the LT predicate on the "owner_id" field.
func OwnerIDLT(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLT(FieldOwnerID, v))
}

// OwnerIDLTE applies the LTE predicate on the "owner_id" field.
func OwnerIDLTE(v int64) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLTE(FieldOwnerID, v))
}

// ValueEQ applies the EQ predicate on the "value" field.
func ValueEQ(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldValue, v))
}

// ValueNEQ applies the NEQ predicate on the "value" field.
func ValueNEQ(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNEQ(FieldValue, v))
}

// ValueIn applies the In predicate on the "value" field.
func ValueIn(vs ...[]byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldIn(FieldValue, vs...))
}

// ValueNotIn applies the NotIn predicate on the "value" field.
func ValueNotIn(vs ...[]byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNotIn(FieldValue, vs...))
}

// ValueGT applies the GT predicate on the "value" field.
func ValueGT(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGT(FieldValue, v))
}

// ValueGTE applies the GTE predicate on the "value" field.
func ValueGTE(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGTE(FieldValue, v))
}

// ValueLT applies the LT predicate on the "value" field.
func ValueLT(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLT(FieldValue, v))
}

// ValueLTE applies the LTE predicate on the "value" field.
func ValueLTE(v []byte) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLTE(FieldValue, v))
}

// CreatedAtEQ applies the EQ predicate on the "created_at" field.
func CreatedAtEQ(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldEQ(FieldCreatedAt, v))
}

// CreatedAtNEQ applies the NEQ predicate on the "created_at" field.
func CreatedAtNEQ(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNEQ(FieldCreatedAt, v))
}

// CreatedAtIn applies the In predicate on the "created_at" field.
func CreatedAtIn(vs ...time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldIn(FieldCreatedAt, vs...))
}

// CreatedAtNotIn applies the NotIn predicate on the "created_at" field.
func CreatedAtNotIn(vs ...time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldNotIn(FieldCreatedAt, vs...))
}

// CreatedAtGT applies the GT predicate on the "created_at" field.
func CreatedAtGT(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGT(FieldCreatedAt, v))
}

// CreatedAtGTE applies the GTE predicate on the "created_at" field.
func CreatedAtGTE(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldGTE(FieldCreatedAt, v))
}

// CreatedAtLT applies the LT predicate on the "created_at" field.
func CreatedAtLT(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLT(FieldCreatedAt, v))
}

// CreatedAtLTE applies the LTE predicate on the "created_at" field.
func CreatedAtLTE(v time.Time) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.FieldLTE(FieldCreatedAt, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.CollectionRecord) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.CollectionRecord) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.CollectionRecord) predicate.CollectionRecord {
	return predicate.CollectionRecord(sql.NotPredicates(p))
}
