package analysis

import (
	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/ast"
	"github.com/ravelin-sql/saneql/internal/builtin"
	"github.com/ravelin-sql/saneql/internal/types"
)

// analyzeScalarBuiltin dispatches a free-standing (Recv == nil) call
// against a non-table builtin signature. Aggregate functions are
// rejected here: they are only legal as an entry of a groupby/aggregate/
// window aggregate list, where analyzeAggregateSlot handles them
// directly without going through this dispatcher.
func (a *Analyzer) analyzeScalarBuiltin(n *ast.Call, sig builtin.Signature, b *BindingInfo, limit int) (*Result, error) {
	switch sig.ID {
	case builtin.CastOp:
		return a.builtinCast(n, b, limit)
	case builtin.ExtractOp:
		return a.builtinExtract(n, b, limit)
	case builtin.SubstrOp:
		return a.builtinSubstr(n, b, limit)
	case builtin.CaseOp:
		return a.builtinCase(n, b, limit)
	case builtin.CoalesceOp:
		return a.builtinCoalesce(n, b, limit)
	case builtin.Concat:
		return a.builtinConcat(n, b, limit)
	case builtin.Gensym:
		return scalarResult(&algebra.Const{Value: a.gensym(), Typ: types.TextType()}), nil
	case builtin.Count, builtin.Sum, builtin.Avg, builtin.Min, builtin.Max, builtin.RowNumber, builtin.CountStar:
		return nil, errf(n.Pos(), "%q is only legal inside an aggregate list", n.Name)
	case builtin.CollateOp:
		return nil, errf(n.Pos(), "collate is only legal as an orderby/window orderby list entry")
	default:
		return nil, errf(n.Pos(), "internal: unhandled scalar builtin %q", n.Name)
	}
}

func (a *Analyzer) builtinCast(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	valueArg, ok := namedArg(n, 0, "value")
	if !ok {
		return nil, errf(n.Pos(), "cast requires a value argument")
	}
	child, err := a.requireScalar(valueArg, b, limit)
	if err != nil {
		return nil, err
	}
	typeArg, ok := namedArg(n, 1, "type")
	if !ok {
		return nil, errf(n.Pos(), "cast requires a type argument")
	}
	id, ok := typeArg.(*ast.Ident)
	if !ok {
		return nil, errf(n.Pos(), "cast type must be a symbol")
	}
	typ, err := resolveType(&ast.Type{Pos_: id.Pos(), Name: id.Name})
	if err != nil {
		return nil, err
	}
	return scalarResult(&algebra.Cast{Child: child, Typ: typ.WithNullable(child.Type().IsNullable())}), nil
}

func (a *Analyzer) builtinExtract(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	part, err := a.symbolArg(n, 0, "part")
	if err != nil {
		return nil, err
	}
	p, ok := builtin.ExtractParts[part]
	if !ok {
		return nil, errf(n.Pos(), "unknown extract part %q", part)
	}
	valueArg, ok := namedArg(n, 1, "value")
	if !ok {
		return nil, errf(n.Pos(), "extract requires a value argument")
	}
	child, err := a.requireScalar(valueArg, b, limit)
	if err != nil {
		return nil, err
	}
	if child.Type().Tag() != types.Date {
		return nil, errf(n.Pos(), "extract requires a date operand, got %s", child.Type())
	}
	return scalarResult(&algebra.Extract{Child: child, Part: p}), nil
}

func (a *Analyzer) builtinSubstr(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	valueArg, ok := namedArg(n, 0, "value")
	if !ok {
		return nil, errf(n.Pos(), "substr requires a value argument")
	}
	value, err := a.requireScalar(valueArg, b, limit)
	if err != nil {
		return nil, err
	}
	if !value.Type().IsString() {
		return nil, errf(n.Pos(), "substr requires a string operand, got %s", value.Type())
	}
	s := &algebra.Substr{Value: value}
	if fromArg, ok := namedArg(n, 1, "from"); ok {
		s.From, err = a.requireScalar(fromArg, b, limit)
		if err != nil {
			return nil, err
		}
	}
	if lenArg, ok := namedArg(n, 2, "len"); ok {
		s.Len, err = a.requireScalar(lenArg, b, limit)
		if err != nil {
			return nil, err
		}
	}
	return scalarResult(s), nil
}

// builtinCase implements case(arms, default), where arms is a brace-list
// whose entries are each a two-element brace-list {condition, result}:
// case(arms: {{a > 1, 'big'}, {a > 0, 'small'}}, default: 'zero').
func (a *Analyzer) builtinCase(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	armsArg, ok := namedArg(n, 0, "arms")
	if !ok {
		return nil, errf(n.Pos(), "case requires an arm list")
	}
	armEntries, err := listEntries(armsArg)
	if err != nil {
		return nil, err
	}
	defaultArg, ok := namedArg(n, 1, "default")
	if !ok {
		return nil, errf(n.Pos(), "case requires a default argument")
	}
	def, err := a.requireScalar(defaultArg, b, limit)
	if err != nil {
		return nil, err
	}

	sc := &algebra.SearchedCase{Default: def}
	for _, armEntry := range armEntries {
		pair, err := listEntries(armEntry.Value)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, errf(armEntry.Value.Pos(), "case arm must be {condition, result}")
		}
		cond, err := a.requireScalar(pair[0].Value, b, limit)
		if err != nil {
			return nil, err
		}
		if cond.Type().Tag() != types.Bool {
			return nil, errf(pair[0].Value.Pos(), "case condition must be boolean, got %s", cond.Type())
		}
		result, err := a.requireScalar(pair[1].Value, b, limit)
		if err != nil {
			return nil, err
		}
		typ, err := commonType(armEntry.Value.Pos(), result.Type(), def.Type())
		if err != nil {
			return nil, err
		}
		// def may have widened on this iteration; keep every arm recorded
		// so far, plus the default, cast to the running unified type.
		if typ != def.Type() {
			def = &algebra.Cast{Child: def, Typ: typ}
			for i, arm := range sc.Arms {
				sc.Arms[i] = algebra.SearchedArm{Cond: arm.Cond, Result: &algebra.Cast{Child: arm.Result, Typ: typ}}
			}
		}
		sc.Arms = append(sc.Arms, algebra.SearchedArm{Cond: cond, Result: &algebra.Cast{Child: result, Typ: typ}})
	}
	if len(sc.Arms) == 0 {
		return nil, errf(n.Pos(), "case requires at least one arm")
	}
	sc.Default = def
	return scalarResult(sc), nil
}

func (a *Analyzer) builtinCoalesce(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	valuesArg, ok := namedArg(n, 0, "values")
	if !ok {
		return nil, errf(n.Pos(), "coalesce requires a value list")
	}
	entries, err := listEntries(valuesArg)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errf(n.Pos(), "coalesce requires at least one value")
	}
	values := make([]algebra.Expression, 0, len(entries))
	for _, entry := range entries {
		v, err := a.requireScalar(entry.Value, b, limit)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	typ := values[0].Type()
	for _, v := range values[1:] {
		var err2 error
		typ, err2 = commonType(n.Pos(), typ, v.Type())
		if err2 != nil {
			return nil, err2
		}
	}

	// coalesce(v) with a single value has no guard to write: it is just
	// that value, returned without a cast.
	if len(values) == 1 {
		return scalarResult(values[0]), nil
	}

	// Every value is normalised to the unified type with an explicit Cast,
	// matching analyzeBinary: generation never has to ask "does this
	// operand need widening".
	for i, v := range values {
		values[i] = &algebra.Cast{Child: v, Typ: typ}
	}

	// coalesce(v1, ..., vn) is "case when v1 is not null then v1 ... else
	// vn end": each leading value (now cast) guards itself, and the last
	// value is the default, returned as-is if every earlier value was null.
	searched := &algebra.SearchedCase{Default: values[len(values)-1]}
	for _, v := range values[:len(values)-1] {
		searched.Arms = append(searched.Arms, algebra.SearchedArm{
			Cond:   &algebra.Comparison{L: v, R: &algebra.Const{Null: true, Typ: typ}, Mode: algebra.CmpIsNot},
			Result: v,
		})
	}
	return scalarResult(searched), nil
}

func (a *Analyzer) builtinConcat(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	valuesArg, ok := namedArg(n, 0, "values")
	if !ok {
		return nil, errf(n.Pos(), "concat requires a value list")
	}
	entries, err := listEntries(valuesArg)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errf(n.Pos(), "concat requires at least one value")
	}
	first, err := a.requireScalar(entries[0].Value, b, limit)
	if err != nil {
		return nil, err
	}
	if !first.Type().IsString() {
		return nil, errf(n.Pos(), "concat requires string operands")
	}
	result := first
	nullable := first.Type().IsNullable()
	for _, entry := range entries[1:] {
		v, err := a.requireScalar(entry.Value, b, limit)
		if err != nil {
			return nil, err
		}
		if !v.Type().IsString() {
			return nil, errf(entry.Value.Pos(), "concat requires string operands")
		}
		nullable = nullable || v.Type().IsNullable()
		result = &algebra.Binary{L: result, R: v, Op: algebra.BinConcat, Typ: types.TextType().WithNullable(nullable)}
	}
	return scalarResult(result), nil
}
