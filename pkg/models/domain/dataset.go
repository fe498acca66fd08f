package domain

type DatasetName string

const (
	DatasetProducts  DatasetName = "Products"
	DatasetCustomers DatasetName = "Customers"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCurrency FieldType = "currency"
)

// IsNumeric reports whether values of this type are right-aligned.
func (t FieldType) IsNumeric() bool {
	return t == FieldTypeNumber || t == FieldTypeCurrency
}

// FieldDescriptor describes one column of a dataset. Width is a weight out of 100
// of the printable page width.
type FieldDescriptor struct {
	Name  string
	Type  FieldType
	Width int
}

type DatasetDescriptor struct {
	Name   DatasetName
	Fields []FieldDescriptor
}

// Field returns the descriptor of the named field.
func (d DatasetDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

func (d DatasetDescriptor) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

type Category struct {
	ID   int64
	Name string
}

// Record is one flat row returned by a remote dataset source.
type Record map[string]any
