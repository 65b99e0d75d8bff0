package feedorder

// Field maps an API-facing order key to its store column.
type Field struct {
	Name   string `yaml:"name"`
	Column string `yaml:"column"`
}

type fieldFile struct {
	Fields []Field `yaml:"fields"`
}
