package hfile

// ComparatorKind enumerates the cell orderings an HFile can declare.
type ComparatorKind uint8

const (
	// ComparatorKV orders cells of user tables. It is the default.
	ComparatorKV ComparatorKind = iota
	// ComparatorMeta orders cells of the hbase:meta catalog table.
	ComparatorMeta
	// ComparatorUnknown carries a class name with no known mapping.
	ComparatorUnknown
)

func (k ComparatorKind) String() string {
	switch k {
	case ComparatorKV:
		return "kv"
	case ComparatorMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// Class names written by the HBase releases that produce v2 and v3 files.
var comparatorClasses = map[string]ComparatorKind{
	"org.apache.hadoop.hbase.KeyValue$KVComparator":                 ComparatorKV,
	"org.apache.hadoop.hbase.CellComparator":                        ComparatorKV,
	"org.apache.hadoop.hbase.CellComparatorImpl":                    ComparatorKV,
	"org.apache.hadoop.hbase.KeyValue$MetaComparator":               ComparatorMeta,
	"org.apache.hadoop.hbase.CellComparator$MetaCellComparator":     ComparatorMeta,
	"org.apache.hadoop.hbase.CellComparatorImpl$MetaCellComparator": ComparatorMeta,
	"org.apache.hadoop.hbase.MetaCellComparator":                    ComparatorMeta,
}

// Comparator is the cell comparator a file was sorted with.
// The zero value is the default KV comparator.
type Comparator struct {
	kind ComparatorKind
	name string
}

// ComparatorFromClassName maps a comparator class name from a trailer.
// Unrecognised names, including the empty string, yield ComparatorUnknown
// with the name preserved.
func ComparatorFromClassName(name string) Comparator {
	if k, ok := comparatorClasses[name]; ok {
		return Comparator{kind: k, name: name}
	}
	return Comparator{kind: ComparatorUnknown, name: name}
}

func (c Comparator) Kind() ComparatorKind { return c.kind }

// ClassName returns the class name as recorded in the file, or "" when the
// trailer did not name one.
func (c Comparator) ClassName() string { return c.name }

func (c Comparator) String() string {
	if c.kind == ComparatorUnknown {
		return "unknown(" + c.name + ")"
	}
	return c.kind.String()
}
