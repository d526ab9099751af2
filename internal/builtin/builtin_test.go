package builtin

import "testing"

func TestLookupKnownTableOp(t *testing.T) {
	sig, ok := Lookup("filter")
	if !ok {
		t.Fatal("expected filter to be registered")
	}
	if !sig.IsTableOp {
		t.Error("expected filter to be a table op")
	}
	if len(sig.Args) != 1 || sig.Args[0].Name != "predicate" {
		t.Errorf("got args %+v", sig.Args)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("nope"); ok {
		t.Fatal("expected unknown builtin to be absent")
	}
}

func TestJoinTypesCoversAllEightForms(t *testing.T) {
	want := []string{"inner", "leftouter", "rightouter", "fullouter", "leftsemi", "rightsemi", "leftanti", "rightanti"}
	for _, name := range want {
		if _, ok := JoinTypes[name]; !ok {
			t.Errorf("missing join type %q", name)
		}
	}
}

func TestAggFuncsCoversCoreAggregates(t *testing.T) {
	for _, id := range []ID{Count, Sum, Avg, Min, Max} {
		if _, ok := AggFuncs[id]; !ok {
			t.Errorf("missing agg func for id %v", id)
		}
	}
}
