// Package types implements SaneQL's value type system: a small tagged
// union with nullability, used by both the algebra IR and the SQL
// generator.
package types

import "fmt"

// Tag identifies the kind of a Type.
type Tag uint8

const (
	Bool Tag = iota
	Integer
	Decimal
	Char
	Varchar
	Text
	Date
	Interval
	Unknown
)

func (t Tag) String() string {
	switch t {
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Char:
		return "char"
	case Varchar:
		return "varchar"
	case Text:
		return "text"
	case Date:
		return "date"
	case Interval:
		return "interval"
	case Unknown:
		return "unknown"
	default:
		return "?"
	}
}

// Type is a value type: a tag, up to two integer parameters (precision and
// scale for Decimal, length for Char/Varchar), and a nullability flag.
// Types are copied by value throughout the compiler.
type Type struct {
	tag      Tag
	param1   int // precision (Decimal), length (Char/Varchar)
	param2   int // scale (Decimal)
	nullable bool
}

// BoolType constructs a non-nullable bool type.
func BoolType() Type { return Type{tag: Bool} }

// IntegerType constructs a non-nullable integer type.
func IntegerType() Type { return Type{tag: Integer} }

// DecimalType constructs a non-nullable decimal(precision,scale) type.
func DecimalType(precision, scale int) Type { return Type{tag: Decimal, param1: precision, param2: scale} }

// CharType constructs a non-nullable char(length) type.
func CharType(length int) Type { return Type{tag: Char, param1: length} }

// VarcharType constructs a non-nullable varchar(length) type.
func VarcharType(length int) Type { return Type{tag: Varchar, param1: length} }

// TextType constructs a non-nullable text type.
func TextType() Type { return Type{tag: Text} }

// DateType constructs a non-nullable date type.
func DateType() Type { return Type{tag: Date} }

// IntervalType constructs a non-nullable interval type.
func IntervalType() Type { return Type{tag: Interval} }

// UnknownType is the type of untyped NULL literals before unification.
func UnknownType() Type { return Type{tag: Unknown} }

// Tag returns the type's tag.
func (t Type) Tag() Tag { return t.tag }

// IsNullable reports whether the type allows NULL values.
func (t Type) IsNullable() bool { return t.nullable }

// Nullable returns a copy of t marked nullable.
func (t Type) Nullable() Type { t.nullable = true; return t }

// NotNullable returns a copy of t marked non-nullable.
func (t Type) NotNullable() Type { t.nullable = false; return t }

// WithNullable returns a copy of t with the given nullability.
func (t Type) WithNullable(nullable bool) Type { t.nullable = nullable; return t }

// Precision returns the decimal precision (only meaningful for Decimal).
func (t Type) Precision() int { return t.param1 }

// Scale returns the decimal scale (only meaningful for Decimal).
func (t Type) Scale() int { return t.param2 }

// Length returns the char/varchar length (only meaningful for Char/Varchar).
func (t Type) Length() int { return t.param1 }

// IsNumeric reports whether the type participates in arithmetic promotion.
func (t Type) IsNumeric() bool { return t.tag == Integer || t.tag == Decimal }

// IsString reports whether the type is one of the textual kinds.
func (t Type) IsString() bool { return t.tag == Char || t.tag == Varchar || t.tag == Text }

// IsUnknown reports whether the type is the placeholder type of an
// untyped NULL.
func (t Type) IsUnknown() bool { return t.tag == Unknown }

// Equal reports whether two types have the same tag and parameters,
// ignoring nullability.
func (t Type) Equal(o Type) bool {
	return t.tag == o.tag && t.param1 == o.param1 && t.param2 == o.param2
}

// SQLName renders the canonical SQL type name, as used by Writer.WriteType in
// the generator (e.g. "decimal(10,2)", "varchar(40)", "text").
func (t Type) SQLName() string {
	switch t.tag {
	case Bool:
		return "boolean"
	case Integer:
		return "integer"
	case Decimal:
		return fmt.Sprintf("decimal(%d,%d)", t.param1, t.param2)
	case Char:
		return fmt.Sprintf("char(%d)", t.param1)
	case Varchar:
		return fmt.Sprintf("varchar(%d)", t.param1)
	case Text:
		return "text"
	case Date:
		return "date"
	case Interval:
		return "interval"
	case Unknown:
		return "text"
	default:
		return "text"
	}
}

func (t Type) String() string {
	s := t.tag.String()
	if t.nullable {
		s += "?"
	}
	return s
}
