package feedorder

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the allow-list of feed order fields. Order keys arrive from
// untrusted query strings and end up in an ORDER BY clause, so resolution
// against this registry is the only path from caller input to SQL.
type Registry struct {
	columns map[string]string
	names   []string
}

// NewRegistry loads the embedded field allow-list
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/fields.yaml")
	if err != nil {
		return nil, fmt.Errorf("read order fields: %w", err)
	}

	var file fieldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal order fields: %w", err)
	}

	r := &Registry{columns: make(map[string]string, len(file.Fields))}
	for _, f := range file.Fields {
		if f.Name == "" || f.Column == "" {
			return nil, fmt.Errorf("order field entry missing name or column: %+v", f)
		}
		r.columns[f.Name] = f.Column
		r.names = append(r.names, f.Name)
	}

	return r, nil
}

// Resolve returns the store column for an order key
func (r *Registry) Resolve(name string) (string, bool) {
	col, ok := r.columns[name]
	return col, ok
}

// Names returns the allowed order keys in file order, for error messages
func (r *Registry) Names() []string {
	return r.names
}
