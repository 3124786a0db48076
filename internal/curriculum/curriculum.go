// Package curriculum provides the grade/subject/chapter catalog.
package curriculum

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Document keys in the cache partition.
const (
	dataKey    = "curriculum_data"
	versionKey = "curriculum_version"
)

type Chapter struct {
	Title string `yaml:"title" json:"title"`
}

type Subject struct {
	Name     string    `yaml:"name" json:"name"`
	Icon     string    `yaml:"icon" json:"icon"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

type Grade struct {
	Level       string    `yaml:"level" json:"level"`
	Description string    `yaml:"description" json:"description"`
	Subjects    []Subject `yaml:"subjects" json:"subjects"`
}

// Catalog is the full list of grades.
type Catalog struct {
	Version string  `yaml:"version" json:"version"`
	Grades  []Grade `yaml:"grades" json:"grades"`
}

// Grade finds a grade by level, ignoring case.
func (c *Catalog) Grade(level string) (*Grade, bool) {
	for i := range c.Grades {
		if strings.EqualFold(c.Grades[i].Level, level) {
			return &c.Grades[i], true
		}
	}
	return nil, false
}

// Subject finds a subject by name, ignoring case.
func (g *Grade) Subject(name string) (*Subject, bool) {
	for i := range g.Subjects {
		if strings.EqualFold(g.Subjects[i].Name, name) {
			return &g.Subjects[i], true
		}
	}
	return nil, false
}

// ChapterTitles returns chapter titles in catalog order.
func (s *Subject) ChapterTitles() []string {
	out := make([]string, len(s.Chapters))
	for i, ch := range s.Chapters {
		out[i] = ch.Title
	}
	return out
}

// Embedded parses the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if c.Version == "" {
		return nil, fmt.Errorf("embedded catalog has no version")
	}
	return &c, nil
}

// Load returns the stored catalog when its version matches the embedded one.
// Otherwise it stores the embedded catalog and returns it. Storage problems
// are logged and the embedded copy is used.
func Load(ctx context.Context, docs store.DocumentRepo, log *logger.Logger) (*Catalog, error) {
	embedded, err := Embedded()
	if err != nil {
		return nil, err
	}

	version, err := store.GetJSON[string](ctx, docs, store.PartitionCache, versionKey)
	if err != nil {
		log.Warn("read curriculum version", "error", err)
		return embedded, nil
	}
	if version != nil && *version == embedded.Version {
		cached, err := store.GetJSON[Catalog](ctx, docs, store.PartitionCache, dataKey)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Warn("read cached curriculum", "error", err)
		}
	}

	if err := store.PutJSON(ctx, docs, store.PartitionCache, dataKey, embedded); err != nil {
		log.Warn("cache curriculum", "error", err)
		return embedded, nil
	}
	if err := store.PutJSON(ctx, docs, store.PartitionCache, versionKey, embedded.Version); err != nil {
		log.Warn("cache curriculum version", "error", err)
	}
	return embedded, nil
}
