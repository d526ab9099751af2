package analysis

import (
	"github.com/ravelin-sql/saneql/internal/ast"
	"github.com/ravelin-sql/saneql/internal/types"
)

// commonType picks the type two operands are implicitly cast to before a
// comparison or an arithmetic/concatenation operator is applied, per the
// five-rule table in spec §4.2:
//  1. equal modulo nullability -> done
//  2. Integer <-> Decimal -> Decimal wide enough for both
//  3. Char/Varchar/Text -> Text
//  4. Date/Interval handled by the caller (operator-dependent, not symmetric)
//  5. Unknown coerces to the other operand's type
func commonType(pos ast.Pos, a, b types.Type) (types.Type, error) {
	nullable := a.IsNullable() || b.IsNullable()

	if a.Equal(b) {
		return a.WithNullable(nullable), nil
	}
	if a.IsUnknown() {
		return b.WithNullable(nullable), nil
	}
	if b.IsUnknown() {
		return a.WithNullable(nullable), nil
	}
	if a.IsNumeric() && b.IsNumeric() {
		return widenDecimal(a, b).WithNullable(nullable), nil
	}
	if a.IsString() && b.IsString() {
		return types.TextType().WithNullable(nullable), nil
	}
	return types.Type{}, errf(pos, "incompatible types %s and %s", a, b)
}

// widenDecimal returns a Decimal type wide enough to hold either operand
// without loss, treating Integer as Decimal(10,0).
func widenDecimal(a, b types.Type) types.Type {
	if a.Tag() == types.Integer && b.Tag() == types.Integer {
		return types.IntegerType()
	}
	pa, sa := decimalShape(a)
	pb, sb := decimalShape(b)
	scale := sa
	if sb > scale {
		scale = sb
	}
	intDigitsA := pa - sa
	intDigitsB := pb - sb
	intDigits := intDigitsA
	if intDigitsB > intDigits {
		intDigits = intDigitsB
	}
	return types.DecimalType(intDigits+scale, scale)
}

func decimalShape(t types.Type) (precision, scale int) {
	if t.Tag() == types.Integer {
		return 10, 0
	}
	return t.Precision(), t.Scale()
}

// dateArithmeticResult implements the Date/Interval combinations the
// analyser accepts for "+" and "-": Date+Interval and Date-Interval both
// produce Date; Date-Date produces Interval. Any other combination
// involving a Date or Interval operand is not arithmetic-compatible.
func dateArithmeticResult(pos ast.Pos, op ast.BinaryOp, l, r types.Type) (types.Type, bool, error) {
	nullable := l.IsNullable() || r.IsNullable()
	switch {
	case l.Tag() == types.Date && r.Tag() == types.Interval && (op == ast.OpAdd || op == ast.OpSub):
		return types.DateType().WithNullable(nullable), true, nil
	case l.Tag() == types.Date && r.Tag() == types.Date && op == ast.OpSub:
		return types.IntervalType().WithNullable(nullable), true, nil
	case l.Tag() == types.Date || r.Tag() == types.Date || l.Tag() == types.Interval || r.Tag() == types.Interval:
		return types.Type{}, true, errf(pos, "incompatible date/interval operands for operator")
	default:
		return types.Type{}, false, nil
	}
}
