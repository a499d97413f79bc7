package glint

// FieldType tags the value slot a Field uses.
type FieldType uint8

const (
	UnknownType FieldType = iota
	StringType
	Int64Type
	Uint64Type
	Float64Type
	BoolType
	StringsType
	ErrorType
	AnyType
)

// Field is one structured key-value pair on a log record. The typed
// constructors (String, Int, Bool, ...) allocate nothing for primitive
// values; F boxes. Keys within one emission are unique; a later field
// with the same key wins at render time per the JSON encoder's semantics.
type Field struct {
	Key   string
	Type  FieldType
	Num   int64
	Str   string
	Float float64
	Any   any
}

// F builds a Field from any value, dispatching to the typed constructor
// when one exists.
func F(key string, value any) Field {
	switch v := value.(type) {
	case string:
		return String(key, v)
	case int:
		return Int(key, v)
	case int64:
		return Int64(key, v)
	case uint64:
		return Uint64(key, v)
	case float64:
		return Float64(key, v)
	case bool:
		return Bool(key, v)
	case []string:
		return Strings(key, v)
	case error:
		return Err(v)
	}
	return Field{Key: key, Type: AnyType, Any: value}
}

// String builds a string field.
func String(key, value string) Field {
	return Field{Key: key, Type: StringType, Str: value}
}

// Int builds an integer field.
func Int(key string, value int) Field {
	return Int64(key, int64(value))
}

// Int64 builds an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Type: Int64Type, Num: value}
}

// Uint64 builds a uint64 field without truncation. Use this for large
// unsigned values such as block heights and slots.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Type: Uint64Type, Any: value}
}

// Float64 builds a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Type: Float64Type, Float: value}
}

// Bool builds a boolean field.
func Bool(key string, value bool) Field {
	f := Field{Key: key, Type: BoolType}
	if value {
		f.Num = 1
	}
	return f
}

// Strings builds a list-of-strings field.
func Strings(key string, values []string) Field {
	return Field{Key: key, Type: StringsType, Any: values}
}

// Err builds an error field under the standard "error" key.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Type: AnyType}
	}
	return Field{Key: "error", Type: ErrorType, Any: err}
}
