package builtin

import "github.com/ravelin-sql/saneql/internal/algebra"

// JoinTypes maps the symbol given to join()'s "type" argument to the
// algebra join kind. Mirrors the flat string->value registry style used
// throughout this package.
var JoinTypes = map[string]algebra.JoinType{
	"inner":     algebra.Inner,
	"leftouter": algebra.LeftOuter,
	"rightouter": algebra.RightOuter,
	"fullouter": algebra.FullOuter,
	"leftsemi":  algebra.LeftSemi,
	"rightsemi": algebra.RightSemi,
	"leftanti":  algebra.LeftAnti,
	"rightanti": algebra.RightAnti,
}

// SetOps maps a builtin ID from the union/except/intersect family to the
// algebra SetOp it produces.
var SetOps = map[ID]algebra.SetOp{
	UnionOp:      algebra.Union,
	UnionAllOp:   algebra.UnionAll,
	ExceptOp:     algebra.Except,
	ExceptAllOp:  algebra.ExceptAll,
	IntersectOp:  algebra.Intersect,
	IntersectAllOp: algebra.IntersectAll,
}

// AggFuncs maps an aggregate builtin ID to the algebra AggFunc.
var AggFuncs = map[ID]algebra.AggFunc{
	Count: algebra.AggCount,
	Sum:   algebra.AggSum,
	Avg:   algebra.AggAvg,
	Min:   algebra.AggMin,
	Max:   algebra.AggMax,
}

// ExtractParts maps the symbol given to extract()'s "part" argument to
// the algebra extract field.
var ExtractParts = map[string]algebra.ExtractPart{
	"year":  algebra.ExtractYear,
	"month": algebra.ExtractMonth,
	"day":   algebra.ExtractDay,
}
