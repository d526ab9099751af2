package analysis

import (
	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/ast"
	"github.com/ravelin-sql/saneql/internal/builtin"
	"github.com/ravelin-sql/saneql/internal/schema"
	"github.com/ravelin-sql/saneql/internal/types"
)

func tableResult(op algebra.Operator, binding *BindingInfo) *Result {
	return &Result{IsTable: true, Op: op, Binding: binding}
}

// tableScan builds a TableScan over tbl, minting one fresh IU per schema
// column and binding them under their column names.
func (a *Analyzer) tableScan(tbl *schema.Table) *Result {
	scan := &algebra.TableScan{TableName: tbl.Name}
	b := NewBindingInfo()
	for _, col := range tbl.Columns {
		iu := a.alloc.New(col.Type)
		scan.ColNames = append(scan.ColNames, col.Name)
		scan.Cols = append(scan.Cols, iu)
		b.AddColumn(col.Name, iu)
	}
	return tableResult(scan, b)
}

// analyzeCall dispatches a Call node. A Call with a receiver (Recv !=
// nil) is a method-chain table operation; a Call without one is either
// table(name), a scalar builtin, or a let invocation.
func (a *Analyzer) analyzeCall(n *ast.Call, b *BindingInfo, limit int) (*Result, error) {
	if n.Name == ast.ListMarker {
		return nil, errf(n.Pos(), "a brace-list may only appear as a builtin argument")
	}

	if n.Recv != nil {
		recv, err := a.requireTable(n.Recv, b, limit)
		if err != nil {
			return nil, err
		}
		return a.analyzeTableOp(n, recv, limit)
	}

	if n.Name == "table" {
		name, err := a.symbolArg(n, 0, "name")
		if err != nil {
			return nil, err
		}
		tbl := a.schema.LookupTable(name)
		if tbl == nil {
			return nil, errf(n.Pos(), "unknown table %q", name)
		}
		return a.tableScan(tbl), nil
	}

	if sig, ok := builtin.Lookup(n.Name); ok && !sig.IsTableOp {
		return a.analyzeScalarBuiltin(n, sig, b, limit)
	}

	if idx, ok := a.letLookup[n.Name]; ok && idx < limit {
		return a.callLet(n.Pos(), idx, n.Args, b, limit)
	}

	if _, ok := builtin.Lookup(n.Name); ok {
		return nil, errf(n.Pos(), "%q is a table operation and requires a receiver", n.Name)
	}
	return nil, errf(n.Pos(), "unknown function %q", n.Name)
}

// symbolArg extracts the i'th positional argument (matched by name as a
// fallback) as a bare symbol — it must be an Ident, never evaluated.
func (a *Analyzer) symbolArg(n *ast.Call, i int, name string) (string, error) {
	if i < len(n.Args) && n.Args[i].Name == "" {
		if id, ok := n.Args[i].Value.(*ast.Ident); ok {
			return id.Name, nil
		}
		return "", errf(n.Pos(), "argument %q must be a symbol", name)
	}
	for _, arg := range n.Args {
		if arg.Name == name {
			if id, ok := arg.Value.(*ast.Ident); ok {
				return id.Name, nil
			}
			return "", errf(n.Pos(), "argument %q must be a symbol", name)
		}
	}
	return "", errf(n.Pos(), "missing required argument %q", name)
}

// constBool resolves a ShapeConstBool argument: a literal true/false
// decided at analysis time, never a column reference or expression.
func constBool(e ast.Expr) (bool, error) {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralBool {
		return false, errf(e.Pos(), "expected a constant true/false")
	}
	return lit.Text == "true", nil
}

// namedArg returns the AST bound to a named argument, checking first by
// position then by name; ok is false if it was omitted.
func namedArg(n *ast.Call, i int, name string) (ast.Expr, bool) {
	if i < len(n.Args) && n.Args[i].Name == "" {
		return n.Args[i].Value, true
	}
	for _, arg := range n.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// listEntries returns the entries of a "{...}" brace-list argument. A
// missing optional list argument yields no entries.
func listEntries(e ast.Expr) ([]ast.FuncArg, error) {
	if e == nil {
		return nil, nil
	}
	call, ok := e.(*ast.Call)
	if !ok || call.Name != ast.ListMarker {
		return nil, errf(e.Pos(), "expected a {...} list")
	}
	return call.Args, nil
}

// analyzeTableOp dispatches one method-chain call against its builtin
// table-operation signature.
func (a *Analyzer) analyzeTableOp(n *ast.Call, recv *Result, limit int) (*Result, error) {
	sig, ok := builtin.Lookup(n.Name)
	if !ok || !sig.IsTableOp {
		return nil, errf(n.Pos(), "unknown table operation %q", n.Name)
	}
	switch sig.ID {
	case builtin.As:
		return a.analyzeAs(n, recv)
	case builtin.Filter:
		return a.analyzeFilter(n, recv, limit)
	case builtin.Project:
		return a.analyzeMapOrProject(n, recv, limit, true)
	case builtin.MapOp:
		return a.analyzeMapOrProject(n, recv, limit, false)
	case builtin.JoinOp:
		return a.analyzeJoin(n, recv, limit)
	case builtin.GroupByOp:
		return a.analyzeGroupBy(n, recv, limit)
	case builtin.AggregateOp:
		return a.analyzeAggregate(n, recv, limit)
	case builtin.OrderBy:
		return a.analyzeOrderBy(n, recv, limit)
	case builtin.WindowOp:
		return a.analyzeWindow(n, recv, limit)
	case builtin.UnionOp, builtin.UnionAllOp, builtin.ExceptOp, builtin.ExceptAllOp, builtin.IntersectOp, builtin.IntersectAllOp:
		return a.analyzeSetOp(n, recv, sig.ID, limit)
	case builtin.Distinct:
		return a.analyzeDistinct(recv)
	default:
		return nil, errf(n.Pos(), "internal: unhandled table operation %q", n.Name)
	}
}

func (a *Analyzer) analyzeAs(n *ast.Call, recv *Result) (*Result, error) {
	alias, err := a.symbolArg(n, 0, "alias")
	if err != nil {
		return nil, err
	}
	b := NewBindingInfo()
	cols := make(map[string]*algebra.IU, len(recv.Binding.Columns))
	for _, c := range recv.Binding.Columns {
		b.AddColumn(c.Name, c.IU)
		cols[c.Name] = c.IU
	}
	b.AddScope(alias, cols)
	return tableResult(recv.Op, b), nil
}

func (a *Analyzer) analyzeFilter(n *ast.Call, recv *Result, limit int) (*Result, error) {
	predArg, ok := namedArg(n, 0, "predicate")
	if !ok {
		return nil, errf(n.Pos(), "filter requires a predicate")
	}
	cond, err := a.requireScalar(predArg, recv.Binding, limit)
	if err != nil {
		return nil, err
	}
	if cond.Type().Tag() != types.Bool {
		return nil, errf(n.Pos(), "filter predicate must be boolean, got %s", cond.Type())
	}
	return tableResult(&algebra.Select{Input: recv.Op, Condition: cond}, recv.Binding), nil
}

// analyzeMapOrProject handles both map (extend the binding) and project
// (replace the binding with just the new entries).
func (a *Analyzer) analyzeMapOrProject(n *ast.Call, recv *Result, limit int, project bool) (*Result, error) {
	listArg, ok := namedArg(n, 0, "columns")
	if !ok {
		return nil, errf(n.Pos(), "%s requires a column list", n.Name)
	}
	entries, err := listEntries(listArg)
	if err != nil {
		return nil, err
	}
	m := &algebra.Map{Input: recv.Op}
	newBinding := NewBindingInfo()
	for _, entry := range entries {
		expr, err := a.requireScalar(entry.Value, recv.Binding, limit)
		if err != nil {
			return nil, err
		}
		iu := a.alloc.New(expr.Type())
		name := entry.Name
		if name == "" {
			name = columnNameHint(entry.Value)
		}
		m.Entries = append(m.Entries, algebra.MapEntry{Expr: expr, IU: iu})
		newBinding.AddColumn(name, iu)
	}
	if project {
		return tableResult(m, newBinding), nil
	}
	full := NewBindingInfo()
	for _, c := range recv.Binding.Columns {
		full.AddColumn(c.Name, c.IU)
	}
	for _, c := range newBinding.Columns {
		full.AddColumn(c.Name, c.IU)
	}
	return tableResult(m, full), nil
}

// columnNameHint derives a default output column name for an unnamed
// map/project entry: an access or identifier keeps its own name,
// anything else is anonymous (name resolution against it will fail,
// exactly as it would against an unlabeled SQL expression column).
func columnNameHint(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.Access:
		return n.Field
	default:
		return ""
	}
}

func (a *Analyzer) analyzeJoin(n *ast.Call, recv *Result, limit int) (*Result, error) {
	rhsArg, ok := namedArg(n, 0, "rhs")
	if !ok {
		return nil, errf(n.Pos(), "join requires a right-hand table")
	}
	rhsRes, err := a.requireTable(rhsArg, NewBindingInfo(), limit)
	if err != nil {
		return nil, err
	}

	joined := mergeBindings(recv.Binding, rhsRes.Binding)

	onArg, ok := namedArg(n, 1, "on")
	if !ok {
		return nil, errf(n.Pos(), "join requires an \"on\" condition")
	}
	cond, err := a.requireScalar(onArg, joined, limit)
	if err != nil {
		return nil, err
	}
	if cond.Type().Tag() != types.Bool {
		return nil, errf(n.Pos(), "join condition must be boolean, got %s", cond.Type())
	}

	kind := algebra.Inner
	if typeArg, ok := namedArg(n, 2, "type"); ok {
		id, ok := typeArg.(*ast.Ident)
		if !ok {
			return nil, errf(n.Pos(), "join type must be a symbol")
		}
		kind, ok = builtin.JoinTypes[id.Name]
		if !ok {
			return nil, errf(n.Pos(), "unknown join type %q", id.Name)
		}
	}

	join := &algebra.Join{Left: recv.Op, Right: rhsRes.Op, Condition: cond, Kind: kind}

	var resultBinding *BindingInfo
	switch kind {
	case algebra.LeftSemi, algebra.LeftAnti:
		resultBinding = recv.Binding
	case algebra.RightSemi, algebra.RightAnti:
		resultBinding = rhsRes.Binding
	default:
		resultBinding = joined
	}
	return tableResult(join, resultBinding), nil
}

// mergeBindings combines two bindings (e.g. for a join): their column
// lists are concatenated, and the flat name map marks any name present
// on both sides as ambiguous — exactly what AddColumn already does when
// called twice with the same name.
func mergeBindings(l, r *BindingInfo) *BindingInfo {
	merged := NewBindingInfo()
	for _, c := range l.Columns {
		merged.AddColumn(c.Name, c.IU)
	}
	for _, c := range r.Columns {
		merged.AddColumn(c.Name, c.IU)
	}
	for name, sc := range l.scopes {
		merged.AddScope(name, sc.columns)
	}
	for name, sc := range r.scopes {
		merged.AddScope(name, sc.columns)
	}
	return merged
}

func (a *Analyzer) analyzeSetOp(n *ast.Call, recv *Result, id builtin.ID, limit int) (*Result, error) {
	rhsArg, ok := namedArg(n, 0, "rhs")
	if !ok {
		return nil, errf(n.Pos(), "%s requires a right-hand table", n.Name)
	}
	rhsRes, err := a.requireTable(rhsArg, NewBindingInfo(), limit)
	if err != nil {
		return nil, err
	}
	if len(recv.Binding.Columns) != len(rhsRes.Binding.Columns) {
		return nil, errf(n.Pos(), "%s requires both sides to have the same number of columns (%d vs %d)", n.Name, len(recv.Binding.Columns), len(rhsRes.Binding.Columns))
	}

	newBinding := NewBindingInfo()
	leftCols := make([]*algebra.IU, len(recv.Binding.Columns))
	rightCols := make([]*algebra.IU, len(rhsRes.Binding.Columns))
	resultIUs := make([]*algebra.IU, len(recv.Binding.Columns))
	for i := range recv.Binding.Columns {
		lc := recv.Binding.Columns[i]
		rc := rhsRes.Binding.Columns[i]
		typ, err := commonType(n.Pos(), lc.IU.Type(), rc.IU.Type())
		if err != nil {
			return nil, errf(n.Pos(), "column %d: %v", i+1, err)
		}
		iu := a.alloc.New(typ)
		leftCols[i] = lc.IU
		rightCols[i] = rc.IU
		resultIUs[i] = iu
		newBinding.AddColumn(lc.Name, iu)
	}

	op := &algebra.SetOperation{
		Left: recv.Op, Right: rhsRes.Op,
		LeftCols: leftCols, RightCols: rightCols, ResultIUs: resultIUs,
		Op: builtin.SetOps[id],
	}
	return tableResult(op, newBinding), nil
}

func (a *Analyzer) analyzeDistinct(recv *Result) (*Result, error) {
	gb := &algebra.GroupBy{Input: recv.Op}
	newBinding := NewBindingInfo()
	for _, c := range recv.Binding.Columns {
		iu := a.alloc.New(c.IU.Type())
		gb.Keys = append(gb.Keys, algebra.GroupKey{Expr: &algebra.IURef{IU: c.IU}, IU: iu})
		newBinding.AddColumn(c.Name, iu)
	}
	return tableResult(gb, newBinding), nil
}

func (a *Analyzer) analyzeOrderBy(n *ast.Call, recv *Result, limit int) (*Result, error) {
	listArg, ok := namedArg(n, 0, "keys")
	if !ok {
		return nil, errf(n.Pos(), "orderby requires a key list")
	}
	entries, err := listEntries(listArg)
	if err != nil {
		return nil, err
	}
	sort := &algebra.Sort{Input: recv.Op}
	for _, entry := range entries {
		item, err := a.analyzeSortItem(entry, recv.Binding, limit)
		if err != nil {
			return nil, err
		}
		sort.Items = append(sort.Items, item)
	}
	if limitArg, ok := namedArg(n, 1, "limit"); ok {
		v, err := a.constNonNegativeInt(limitArg, recv.Binding, limit, "limit")
		if err != nil {
			return nil, err
		}
		sort.Limit = &v
	}
	if offsetArg, ok := namedArg(n, 2, "offset"); ok {
		v, err := a.constNonNegativeInt(offsetArg, recv.Binding, limit, "offset")
		if err != nil {
			return nil, err
		}
		sort.Offset = &v
	}
	return tableResult(sort, recv.Binding), nil
}

// analyzeSortItem analyses one orderby/window-orderby list entry. An
// entry named "desc" sorts descending; an entry whose value is itself a
// collate(value, name) call tags the item with an explicit collation
// (validated against the fixed Collations set) instead of evaluating
// collate() as an ordinary scalar call.
func (a *Analyzer) analyzeSortItem(entry ast.FuncArg, b *BindingInfo, limit int) (algebra.SortItem, error) {
	desc := entry.Name == "desc"
	valueExpr := entry.Value
	collate := ""
	if call, ok := valueExpr.(*ast.Call); ok && call.Recv == nil && call.Name == "collate" {
		inner, ok := namedArg(call, 0, "value")
		if !ok {
			return algebra.SortItem{}, errf(call.Pos(), "collate requires a value argument")
		}
		name, err := a.symbolArg(call, 1, "name")
		if err != nil {
			return algebra.SortItem{}, err
		}
		if !builtin.Collations[name] {
			return algebra.SortItem{}, errf(call.Pos(), "unknown collation %q", name)
		}
		if name != "none" {
			collate = name
		}
		valueExpr = inner
	}
	expr, err := a.requireScalar(valueExpr, b, limit)
	if err != nil {
		return algebra.SortItem{}, err
	}
	return algebra.SortItem{Expr: expr, Collate: collate, Desc: desc}, nil
}

func (a *Analyzer) constNonNegativeInt(e ast.Expr, b *BindingInfo, limit int, argName string) (int, error) {
	expr, err := a.requireScalar(e, b, limit)
	if err != nil {
		return 0, err
	}
	n, ok := parseIntLiteral(expr)
	if !ok {
		return 0, errf(e.Pos(), "%s must be a constant non-negative integer", argName)
	}
	if n < 0 {
		return 0, errf(e.Pos(), "%s must be non-negative, got %d", argName, n)
	}
	return n, nil
}

// analyzeGroupBy handles groupby(keys, aggregates?). The keys list is
// analysed in the input binding; the aggregates list is analysed with a
// GroupByScope that legalizes direct key references and requires raw
// input columns to be wrapped in an aggregate function.
func (a *Analyzer) analyzeGroupBy(n *ast.Call, recv *Result, limit int) (*Result, error) {
	keysArg, ok := namedArg(n, 0, "keys")
	if !ok {
		return nil, errf(n.Pos(), "groupby requires a key list")
	}
	keyEntries, err := listEntries(keysArg)
	if err != nil {
		return nil, err
	}

	gb := &algebra.GroupBy{Input: recv.Op}
	newBinding := NewBindingInfo()
	groupKeys := map[*algebra.IU]bool{}
	for _, entry := range keyEntries {
		expr, err := a.requireScalar(entry.Value, recv.Binding, limit)
		if err != nil {
			return nil, err
		}
		iu := a.alloc.New(expr.Type())
		name := entry.Name
		if name == "" {
			name = columnNameHint(entry.Value)
		}
		gb.Keys = append(gb.Keys, algebra.GroupKey{Expr: expr, IU: iu})
		newBinding.AddColumn(name, iu)
		groupKeys[iu] = true
	}

	aggBinding := recv.Binding.WithGroupMode(GroupNone)
	aggBinding.groupKeys = groupKeys

	if aggsArg, ok := namedArg(n, 1, "aggregates"); ok {
		aggEntries, err := listEntries(aggsArg)
		if err != nil {
			return nil, err
		}
		for _, entry := range aggEntries {
			slot, name, err := a.analyzeAggregateSlot(entry, aggBinding, limit)
			if err != nil {
				return nil, err
			}
			gb.Aggregates = append(gb.Aggregates, slot)
			newBinding.AddColumn(name, slot.IU)
		}
	}

	return tableResult(gb, newBinding), nil
}

// analyzeAggregateSlot analyses one "name: aggfunc(arg)" aggregate-list
// entry shared by groupby's aggregates and aggregate()'s argument list.
func (a *Analyzer) analyzeAggregateSlot(entry ast.FuncArg, aggBinding *BindingInfo, limit int) (algebra.AggregateSlot, string, error) {
	call, ok := entry.Value.(*ast.Call)
	if !ok || call.Recv != nil {
		return algebra.AggregateSlot{}, "", errf(entry.Value.Pos(), "expected an aggregate function call")
	}
	sig, ok := builtin.Lookup(call.Name)
	if !ok {
		return algebra.AggregateSlot{}, "", errf(call.Pos(), "unknown aggregate function %q", call.Name)
	}
	fn, ok := builtin.AggFuncs[sig.ID]
	isCountStar := sig.ID == builtin.Count && len(call.Args) == 0
	if !ok && !isCountStar {
		return algebra.AggregateSlot{}, "", errf(call.Pos(), "%q is not an aggregate function", call.Name)
	}

	innerBinding := aggBinding.WithGroupMode(InsideAggregate)
	var arg algebra.Expression
	distinct := false
	if !isCountStar {
		valueArg, ok := namedArg(call, 0, "value")
		if !ok {
			return algebra.AggregateSlot{}, "", errf(call.Pos(), "%q requires an argument", call.Name)
		}
		var err error
		arg, err = a.requireScalar(valueArg, innerBinding, limit)
		if err != nil {
			return algebra.AggregateSlot{}, "", err
		}
		if distinctArg, ok := namedArg(call, 1, "distinct"); ok {
			distinct, err = constBool(distinctArg)
			if err != nil {
				return algebra.AggregateSlot{}, "", err
			}
		}
	}

	var iu *algebra.IU
	var aggFunc algebra.AggFunc
	if isCountStar {
		iu = a.alloc.New(types.IntegerType())
		aggFunc = algebra.AggCountStar
	} else {
		typ := arg.Type()
		if fn == algebra.AggCount {
			typ = types.IntegerType()
		}
		iu = a.alloc.New(typ)
		aggFunc = fn
	}

	name := entry.Name
	if name == "" {
		name = call.Name
	}
	return algebra.AggregateSlot{IU: iu, Func: aggFunc, Distinct: distinct, Arg: arg}, name, nil
}

// analyzeAggregate handles aggregate(aggregates): equivalent to a
// groupby with no keys. A single aggregate returns a scalar Aggregate
// expression whose Subplan is the bare input (the generator renders the
// aggregate list itself, so nesting a GroupBy here would render it
// twice); more than one aggregate instead returns the table-valued
// GroupBy directly, since a bare scalar can only surface one value.
func (a *Analyzer) analyzeAggregate(n *ast.Call, recv *Result, limit int) (*Result, error) {
	aggsArg, ok := namedArg(n, 0, "aggregates")
	if !ok {
		return nil, errf(n.Pos(), "aggregate requires an aggregate list")
	}
	// A bare aggregate call ("aggregate(count())") is a one-entry list.
	aggEntries := []ast.FuncArg{{Value: aggsArg}}
	if call, ok := aggsArg.(*ast.Call); ok && call.Name == ast.ListMarker {
		aggEntries = call.Args
	}

	gb := &algebra.GroupBy{Input: recv.Op}
	aggBinding := recv.Binding.WithGroupMode(GroupNone)
	aggBinding.groupKeys = map[*algebra.IU]bool{}

	resultBinding := NewBindingInfo()
	var computation algebra.Expression
	for _, entry := range aggEntries {
		slot, name, err := a.analyzeAggregateSlot(entry, aggBinding, limit)
		if err != nil {
			return nil, err
		}
		gb.Aggregates = append(gb.Aggregates, slot)
		resultBinding.AddColumn(name, slot.IU)
		if computation == nil {
			computation = &algebra.IURef{IU: slot.IU}
		}
	}
	if computation == nil {
		return nil, errf(n.Pos(), "aggregate requires at least one aggregate")
	}
	if len(aggEntries) > 1 {
		// Multiple aggregates: the scalar result is a record-like tuple
		// conceptually, but a bare scalar expression can surface only
		// one value — callers that need several should use groupby with
		// no keys instead, which is the table-valued equivalent.
		return tableResult(gb, resultBinding), nil
	}

	agg := &algebra.Aggregate{Subplan: recv.Op, Aggregations: gb.Aggregates, Computation: computation}
	return scalarResult(agg), nil
}

func (a *Analyzer) analyzeWindow(n *ast.Call, recv *Result, limit int) (*Result, error) {
	aggsArg, ok := namedArg(n, 0, "aggregates")
	if !ok {
		return nil, errf(n.Pos(), "window requires an aggregate list")
	}
	aggEntries, err := listEntries(aggsArg)
	if err != nil {
		return nil, err
	}

	win := &algebra.Window{Input: recv.Op}
	if partArg, ok := namedArg(n, 1, "partitionby"); ok {
		entries, err := listEntries(partArg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			expr, err := a.requireScalar(entry.Value, recv.Binding, limit)
			if err != nil {
				return nil, err
			}
			win.PartitionBy = append(win.PartitionBy, expr)
		}
	}
	if orderArg, ok := namedArg(n, 2, "orderby"); ok {
		entries, err := listEntries(orderArg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			item, err := a.analyzeSortItem(entry, recv.Binding, limit)
			if err != nil {
				return nil, err
			}
			win.OrderBy = append(win.OrderBy, item)
		}
	}

	newBinding := NewBindingInfo()
	for _, c := range recv.Binding.Columns {
		newBinding.AddColumn(c.Name, c.IU)
	}

	windowBinding := recv.Binding.WithGroupMode(InsideWindow)
	for _, entry := range aggEntries {
		call, ok := entry.Value.(*ast.Call)
		if !ok || call.Recv != nil {
			return nil, errf(entry.Value.Pos(), "expected an aggregate or rownumber() call")
		}
		sig, ok := builtin.Lookup(call.Name)
		if !ok {
			return nil, errf(call.Pos(), "unknown window function %q", call.Name)
		}
		name := entry.Name
		if name == "" {
			name = call.Name
		}
		if sig.ID == builtin.RowNumber {
			iu := a.alloc.New(types.IntegerType())
			win.Aggregates = append(win.Aggregates, algebra.WindowAggregate{IU: iu, RowNum: true})
			newBinding.AddColumn(name, iu)
			continue
		}
		slot, _, err := a.analyzeAggregateSlot(entry, windowBinding, limit)
		if err != nil {
			return nil, err
		}
		win.Aggregates = append(win.Aggregates, algebra.WindowAggregate{IU: slot.IU, Func: slot.Func, Distinct: slot.Distinct, Arg: slot.Arg})
		newBinding.AddColumn(name, slot.IU)
	}

	return tableResult(win, newBinding), nil
}
