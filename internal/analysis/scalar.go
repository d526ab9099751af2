package analysis

import (
	"strconv"

	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/ast"
	"github.com/ravelin-sql/saneql/internal/types"
)

func scalarResult(e algebra.Expression) *Result { return &Result{Expr: e} }

func (a *Analyzer) analyzeLiteral(n *ast.Literal) (*Result, error) {
	switch n.Kind {
	case ast.LiteralInteger:
		return scalarResult(&algebra.Const{Value: n.Text, Typ: types.IntegerType()}), nil
	case ast.LiteralDecimal:
		prec, scale := decimalShapeOfLiteral(n.Text)
		return scalarResult(&algebra.Const{Value: n.Text, Typ: types.DecimalType(prec, scale)}), nil
	case ast.LiteralString:
		return scalarResult(&algebra.Const{Value: n.Text, Typ: types.TextType()}), nil
	case ast.LiteralBool:
		return scalarResult(&algebra.Const{Value: n.Text, Typ: types.BoolType()}), nil
	case ast.LiteralDate:
		return scalarResult(&algebra.Const{Value: n.Text, Typ: types.DateType()}), nil
	case ast.LiteralInterval:
		return scalarResult(&algebra.Const{Value: n.Text, Typ: types.IntervalType()}), nil
	case ast.LiteralNull:
		return scalarResult(&algebra.Const{Null: true, Typ: types.UnknownType().Nullable()}), nil
	default:
		return nil, errf(n.Pos(), "internal: unhandled literal kind")
	}
}

// decimalShapeOfLiteral derives a (precision, scale) for a decimal
// literal's textual lexeme, e.g. "10.25" -> (4, 2).
func decimalShapeOfLiteral(text string) (precision, scale int) {
	digits := 0
	fraction := 0
	seenDot := false
	for _, ch := range text {
		switch {
		case ch == '.':
			seenDot = true
		case ch >= '0' && ch <= '9':
			digits++
			if seenDot {
				fraction++
			}
		}
	}
	if digits == 0 {
		digits = 1
	}
	return digits, fraction
}

func (a *Analyzer) analyzeIdent(n *ast.Ident, b *BindingInfo, limit int) (*Result, error) {
	if expr, argBind, argLimit, ok := b.LookupArgument(n.Name); ok {
		return a.analyzeExpr(expr, argBind, argLimit)
	}
	if iu, found, amb := b.Lookup(n.Name); found {
		if amb {
			return nil, errf(n.Pos(), "ambiguous reference to %q", n.Name)
		}
		if err := a.checkGroupAccess(n.Pos(), b, iu); err != nil {
			return nil, err
		}
		return scalarResult(&algebra.IURef{IU: iu}), nil
	}
	if idx, ok := a.letLookup[n.Name]; ok && idx < limit {
		return a.callLet(n.Pos(), idx, nil, b, limit)
	}
	if tbl := a.schema.LookupTable(n.Name); tbl != nil {
		return a.tableScan(tbl), nil
	}
	return nil, errf(n.Pos(), "unknown name %q", n.Name)
}

func (a *Analyzer) analyzeAccess(n *ast.Access, b *BindingInfo, limit int) (*Result, error) {
	if baseIdent, ok := n.Base.(*ast.Ident); ok {
		if iu, found, amb := b.LookupScope(baseIdent.Name, n.Field); found {
			if amb {
				return nil, errf(n.Pos(), "ambiguous reference to %q.%q", baseIdent.Name, n.Field)
			}
			if err := a.checkGroupAccess(n.Pos(), b, iu); err != nil {
				return nil, err
			}
			return scalarResult(&algebra.IURef{IU: iu}), nil
		}
	}
	// Not a named scope: treat n.Base as a table-valued expression (a
	// table() call, a let argument, or a nested table chain) and Field
	// as one of its produced columns.
	baseRes, err := a.requireTable(n.Base, b, limit)
	if err != nil {
		return nil, err
	}
	iu, found, amb := baseRes.Binding.Lookup(n.Field)
	if !found {
		return nil, errf(n.Pos(), "unknown column %q", n.Field)
	}
	if amb {
		return nil, errf(n.Pos(), "ambiguous reference to %q", n.Field)
	}
	return scalarResult(&algebra.IURef{IU: iu}), nil
}

// checkGroupAccess enforces the aggregation-scope rule: when b is the
// binding built for a groupby/aggregate's aggregation list (b.groupKeys
// != nil) and the analyser is not currently inside an aggregate
// function's own argument (b.GroupMode == GroupNone), only IUs that are
// group keys may be referenced directly — a raw input column must be
// wrapped in an aggregate function.
func (a *Analyzer) checkGroupAccess(pos ast.Pos, b *BindingInfo, iu *algebra.IU) error {
	if b.groupKeys == nil || b.GroupMode != GroupNone {
		return nil
	}
	if b.groupKeys[iu] {
		return nil
	}
	return errf(pos, "column used outside an aggregate function in a grouped query")
}

func (a *Analyzer) analyzeUnary(n *ast.UnaryExpression, b *BindingInfo, limit int) (*Result, error) {
	child, err := a.requireScalar(n.Operand, b, limit)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNot:
		if child.Type().Tag() != types.Bool {
			return nil, errf(n.Pos(), "NOT requires a boolean operand, got %s", child.Type())
		}
		return scalarResult(&algebra.Unary{Child: child, Op: algebra.UnaryNot, Typ: child.Type()}), nil
	case ast.OpNeg, ast.OpPos:
		if !child.Type().IsNumeric() {
			return nil, errf(n.Pos(), "unary +/- requires a numeric operand, got %s", child.Type())
		}
		op := algebra.UnaryPlus
		if n.Op == ast.OpNeg {
			op = algebra.UnaryMinus
		}
		return scalarResult(&algebra.Unary{Child: child, Op: op, Typ: child.Type()}), nil
	default:
		return nil, errf(n.Pos(), "internal: unhandled unary operator")
	}
}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpression, b *BindingInfo, limit int) (*Result, error) {
	l, err := a.requireScalar(n.Lhs, b, limit)
	if err != nil {
		return nil, err
	}
	r, err := a.requireScalar(n.Rhs, b, limit)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		if l.Type().Tag() != types.Bool || r.Type().Tag() != types.Bool {
			return nil, errf(n.Pos(), "AND/OR require boolean operands")
		}
		op := algebra.BinAnd
		if n.Op == ast.OpOr {
			op = algebra.BinOr
		}
		typ := types.BoolType().WithNullable(l.Type().IsNullable() || r.Type().IsNullable())
		return scalarResult(&algebra.Binary{L: l, R: r, Op: op, Typ: typ}), nil

	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpLike, ast.OpIs, ast.OpIsNot:
		mode, err := comparisonMode(n.Op)
		if err != nil {
			return nil, err
		}
		if _, err := commonType(n.Pos(), l.Type(), r.Type()); err != nil {
			return nil, err
		}
		return scalarResult(&algebra.Comparison{L: l, R: r, Mode: mode}), nil

	case ast.OpConcat:
		if !l.Type().IsString() && !l.Type().IsUnknown() || !r.Type().IsString() && !r.Type().IsUnknown() {
			return nil, errf(n.Pos(), "|| requires string operands")
		}
		typ := types.TextType().WithNullable(l.Type().IsNullable() || r.Type().IsNullable())
		return scalarResult(&algebra.Binary{L: l, R: r, Op: algebra.BinConcat, Typ: typ}), nil

	default: // arithmetic: +, -, *, /, %, ^
		if typ, handled, err := dateArithmeticResult(n.Pos(), n.Op, l.Type(), r.Type()); handled {
			if err != nil {
				return nil, err
			}
			return scalarResult(&algebra.Binary{L: l, R: r, Op: arithOp(n.Op), Typ: typ}), nil
		}
		if !l.Type().IsNumeric() || !r.Type().IsNumeric() {
			return nil, errf(n.Pos(), "arithmetic requires numeric operands, got %s and %s", l.Type(), r.Type())
		}
		typ, err := commonType(n.Pos(), l.Type(), r.Type())
		if err != nil {
			return nil, err
		}
		// Both operands are normalised to the unified type with an
		// explicit Cast, even when one already has it: generation never
		// has to ask "does this operand need widening".
		return scalarResult(&algebra.Binary{
			L:   &algebra.Cast{Child: l, Typ: typ},
			R:   &algebra.Cast{Child: r, Typ: typ},
			Op:  arithOp(n.Op),
			Typ: typ,
		}), nil
	}
}

func arithOp(op ast.BinaryOp) algebra.BinaryOp {
	switch op {
	case ast.OpAdd:
		return algebra.BinAdd
	case ast.OpSub:
		return algebra.BinSub
	case ast.OpMul:
		return algebra.BinMul
	case ast.OpDiv:
		return algebra.BinDiv
	case ast.OpMod:
		return algebra.BinMod
	case ast.OpPow:
		return algebra.BinPow
	default:
		return algebra.BinAdd
	}
}

func comparisonMode(op ast.BinaryOp) (algebra.ComparisonMode, error) {
	switch op {
	case ast.OpEq:
		return algebra.CmpEq, nil
	case ast.OpNe:
		return algebra.CmpNe, nil
	case ast.OpLt:
		return algebra.CmpLt, nil
	case ast.OpLe:
		return algebra.CmpLe, nil
	case ast.OpGt:
		return algebra.CmpGt, nil
	case ast.OpGe:
		return algebra.CmpGe, nil
	case ast.OpLike:
		return algebra.CmpLike, nil
	case ast.OpIs:
		return algebra.CmpIs, nil
	case ast.OpIsNot:
		return algebra.CmpIsNot, nil
	default:
		return 0, errf(ast.Pos{}, "internal: not a comparison operator")
	}
}

func (a *Analyzer) analyzeCast(n *ast.Cast, b *BindingInfo, limit int) (*Result, error) {
	child, err := a.requireScalar(n.Expr, b, limit)
	if err != nil {
		return nil, err
	}
	typ, err := resolveType(n.Type)
	if err != nil {
		return nil, err
	}
	return scalarResult(&algebra.Cast{Child: child, Typ: typ.WithNullable(child.Type().IsNullable())}), nil
}

func resolveType(t *ast.Type) (types.Type, error) {
	switch t.Name {
	case "bool", "boolean":
		return types.BoolType(), nil
	case "integer", "int":
		return types.IntegerType(), nil
	case "decimal", "numeric":
		p, s := 18, 2
		if len(t.Args) >= 1 {
			p = t.Args[0]
		}
		if len(t.Args) >= 2 {
			s = t.Args[1]
		}
		return types.DecimalType(p, s), nil
	case "char":
		n := 1
		if len(t.Args) >= 1 {
			n = t.Args[0]
		}
		return types.CharType(n), nil
	case "varchar":
		n := 255
		if len(t.Args) >= 1 {
			n = t.Args[0]
		}
		return types.VarcharType(n), nil
	case "text", "string":
		return types.TextType(), nil
	case "date":
		return types.DateType(), nil
	case "interval":
		return types.IntervalType(), nil
	default:
		return types.Type{}, errf(t.Pos(), "unknown type %q", t.Name)
	}
}

// parseIntLiteral reads an integer out of a Const built from a literal,
// used for limit/offset/extract-part-like constant arguments.
func parseIntLiteral(e algebra.Expression) (int, bool) {
	c, ok := e.(*algebra.Const)
	if !ok || c.Null || c.Typ.Tag() != types.Integer {
		return 0, false
	}
	n, err := strconv.Atoi(c.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}
