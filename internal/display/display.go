// Package display turns raw record rows into ordered, labeled field
// lists for presentation. Reviewers see clinical fields only; claim
// bookkeeping and recorded results are never shown.
package display

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet"
)

// Field is a single labeled value ready for rendering.
type Field struct {
	Column string
	Label  string
	Value  string
}

// Spec controls presentation order and labeling. Columns listed in
// Order come first; any remaining visible column follows in sheet
// order. Labels maps column names to friendly display labels.
type Spec struct {
	Order  []string          `yaml:"order"`
	Labels map[string]string `yaml:"labels"`
}

// LoadSpec reads a fields file in YAML form. An empty path yields a
// zero spec: sheet order and derived labels.
func LoadSpec(path string) (Spec, error) {
	if strings.TrimSpace(path) == "" {
		return Spec{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read fields file: %w", err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("parse fields file %s: %w", path, err)
	}
	return spec, nil
}

var titleCaser = cases.Title(language.English)

// Label returns the configured label for a column, or a title-cased
// form of the column name when none is configured.
func (s Spec) Label(column string) string {
	if label, ok := s.Labels[column]; ok && strings.TrimSpace(label) != "" {
		return label
	}
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(column, "_", " ")))
}

// / Fields assembles the visible fields for one row: ordered columns
// first, then every remaining column that is neither claim
// bookkeeping nor a recorded result.
func (s Spec) Fields(snap sheet.Snapshot, row int) []Field {
	hidden := hiddenColumns()
	present := make(map[string]bool, len(snap.Header))
	for _, column := range snap.Header {
		present[column] = true
	}

	var fields []Field
	emitted := make(map[string]bool, len(s.Order))
	for _, column := range s.Order {
		if !present[column] || hidden[column] || emitted[column] {
			continue
		}
		emitted[column] = true
		fields = append(fields, Field{Column: column, Label: s.Label(column), Value: snap.Value(row, column)})
	}
	for _, column := range snap.Header {
		if hidden[column] || emitted[column] {
			continue
		}
		emitted[column] = true
		fields = append(fields, Field{Column: column, Label: s.Label(column), Value: snap.Value(row, column)})
	}
	return fields
}

func hiddenColumns() map[string]bool {
	hidden := map[string]bool{
		review.ColumnOutcome:    true,
		review.ColumnConfidence: true,
		review.ColumnScore:      true,
	}
	for _, column := range review.AdminColumns() {
		hidden[column] = true
	}
	return hidden
}
