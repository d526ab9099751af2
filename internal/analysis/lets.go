package analysis

import "github.com/ravelin-sql/saneql/internal/ast"

// callLet expands an invocation of lets[idx]: it binds each formal
// argument to either the caller-supplied expression or the parameter's
// default (re-analysed lazily, in the callee's own scope, whenever
// referenced), then analyses the let's body in the fresh scope. The
// body itself may only see lets declared strictly before idx — that is
// what rules out cycles and forward references.
func (a *Analyzer) callLet(pos ast.Pos, idx int, args []ast.FuncArg, callerBinding *BindingInfo, callerLimit int) (*Result, error) {
	entry := a.lets[idx]

	if entry.Signature == nil {
		if len(args) > 0 {
			return nil, errf(pos, "%q takes no arguments", entry.Name)
		}
		return a.analyzeExpr(entry.Body, NewBindingInfo(), idx)
	}

	child := NewChildForLetCall(callerBinding)
	assigned := make([]bool, len(entry.Signature))
	positional := 0

	for _, arg := range args {
		if arg.Name == "" {
			if positional >= len(entry.Signature) {
				return nil, errf(pos, "too many arguments to %q", entry.Name)
			}
			child.BindArgument(entry.Signature[positional].Name, arg.Value, callerBinding, callerLimit)
			assigned[positional] = true
			positional++
			continue
		}
		found := false
		for i, p := range entry.Signature {
			if p.Name == arg.Name {
				if assigned[i] {
					return nil, errf(pos, "argument %q given more than once", arg.Name)
				}
				child.BindArgument(p.Name, arg.Value, callerBinding, callerLimit)
				assigned[i] = true
				found = true
				break
			}
		}
		if !found {
			return nil, errf(pos, "%q has no argument named %q", entry.Name, arg.Name)
		}
	}

	for i, p := range entry.Signature {
		if assigned[i] {
			continue
		}
		if p.Default == nil {
			return nil, errf(pos, "missing required argument %q to %q", p.Name, entry.Name)
		}
		child.BindArgument(p.Name, p.Default, child, idx)
	}

	return a.analyzeExpr(entry.Body, child, idx)
}
