package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/rolereport/internal/model"
	"gopkg.in/yaml.v3"
)

// File is a Source that reads items from a file on every call.
//
// The file type is chosen by extension. YAML and JSON files hold either a
// top-level list of items or a mapping with an "items" list; JSON is read
// with the YAML decoder since JSON documents are valid YAML. CSV files have
// an "id,name,value" header row.
type File struct {
	path string
}

// NewFile creates a File source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Items reads and validates the file.
func (f *File) Items(ctx context.Context) ([]model.LineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path) //nolint:gosec // User-provided items path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read item file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".yaml", ".yml", ".json":
		return ParseYAML(data)
	case ".csv":
		return ParseCSV(strings.NewReader(string(data)))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, f.path)
	}
}

// rawItem mirrors model.LineItem with optional fields so that missing
// values can be told apart from zero.
type rawItem struct {
	ID    *string  `yaml:"id"`
	Name  string   `yaml:"name"`
	Value *float64 `yaml:"value"`
}

// itemsDocument is the mapping form of an item file.
type itemsDocument struct {
	Items []rawItem `yaml:"items"`
}

// ParseYAML parses items from YAML or JSON data.
func ParseYAML(data []byte) ([]model.LineItem, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse item file: %w", err)
	}
	if len(node.Content) == 0 {
		return []model.LineItem{}, nil
	}

	var raws []rawItem
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedItem, err)
		}
	case yaml.MappingNode:
		var doc itemsDocument
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedItem, err)
		}
		raws = doc.Items
	default:
		return nil, errors.New("failed to parse item file: expected a list of items or an items mapping")
	}

	items := make([]model.LineItem, 0, len(raws))
	for i, raw := range raws {
		if raw.ID == nil || *raw.ID == "" {
			return nil, malformed(i+1, "missing id")
		}
		if raw.Value == nil {
			return nil, malformed(i+1, "item %q has no value", *raw.ID)
		}
		items = append(items, model.LineItem{ID: *raw.ID, Name: raw.Name, Value: *raw.Value})
	}

	return items, nil
}

// ParseCSV parses items from CSV with an "id,name,value" header.
// Column order is taken from the header; extra columns are ignored.
func ParseCSV(r io.Reader) ([]model.LineItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []model.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "name", "value"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("failed to read CSV header: missing column %q", required)
		}
	}

	var items []model.LineItem
	for pos := 1; ; pos++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		id := record[cols["id"]]
		if id == "" {
			return nil, malformed(pos, "missing id")
		}
		raw := strings.TrimSpace(record[cols["value"]])
		if raw == "" {
			return nil, malformed(pos, "item %q has no value", id)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, malformed(pos, "item %q has non-numeric value %q", id, raw)
		}

		items = append(items, model.LineItem{ID: id, Name: record[cols["name"]], Value: value})
	}

	if items == nil {
		items = []model.LineItem{}
	}
	return items, nil
}
