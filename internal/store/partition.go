package store

import "strings"

// Partition names a table-like area of the store. Document partitions hold
// singleton values addressed by key; collection partitions hold records
// addressed by id and optionally owned by a student.
type Partition string

// Document partitions.
const (
	PartitionModules     Partition = "modules"
	PartitionReports     Partition = "reports"
	PartitionProgress    Partition = "progress"
	PartitionDiagrams    Partition = "diagrams"
	PartitionConceptMaps Partition = "concept_maps"
	PartitionCache       Partition = "cache"
)

// Collection partitions.
const (
	PartitionPerformance Partition = "performance"
	PartitionQuestions   Partition = "questions"
	PartitionFeedback    Partition = "feedback"
)

var collectionPartitions = map[Partition]bool{
	PartitionPerformance: true,
	PartitionQuestions:   true,
	PartitionFeedback:    true,
}

var documentPartitions = map[Partition]bool{
	PartitionModules:     true,
	PartitionReports:     true,
	PartitionProgress:    true,
	PartitionDiagrams:    true,
	PartitionConceptMaps: true,
	PartitionCache:       true,
}

// IsCollection reports whether p is a collection partition.
func (p Partition) IsCollection() bool {
	return collectionPartitions[p]
}

// IsDocument reports whether p is a document partition.
func (p Partition) IsDocument() bool {
	return documentPartitions[p]
}

var keyEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

// Key joins parts under prefix with "/". Each part has "%" and "/" escaped,
// so distinct part lists never produce the same key.
func Key(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(keyEscaper.Replace(p))
	}
	return b.String()
}
