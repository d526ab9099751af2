package schema

import "testing"

func TestStaticCatalogueExactMatch(t *testing.T) {
	cat := NewStaticCatalogue(Table{Name: "orders", Columns: []Column{{Name: "o_orderkey"}}})
	tbl := cat.LookupTable("orders")
	if tbl == nil {
		t.Fatal("expected table, got nil")
	}
	if tbl.Name != "orders" {
		t.Fatalf("got table %q", tbl.Name)
	}
}

func TestStaticCatalogueCaseInsensitive(t *testing.T) {
	cat := NewStaticCatalogue(Table{Name: "Orders"})
	if cat.LookupTable("ORDERS") == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
}

func TestStaticCatalogueInflection(t *testing.T) {
	cat := NewStaticCatalogue(Table{Name: "orders"})
	if cat.LookupTable("order") == nil {
		t.Fatal("expected singular form to resolve via inflection")
	}
}

func TestStaticCatalogueMiss(t *testing.T) {
	cat := NewStaticCatalogue(Table{Name: "orders"})
	if cat.LookupTable("widgets") != nil {
		t.Fatal("expected nil for unregistered table")
	}
}

func TestEmptyHasNoTables(t *testing.T) {
	if Empty().LookupTable("orders") != nil {
		t.Fatal("expected empty schema to have no tables")
	}
}

func TestMongoTableToTableConvertsColumnTypes(t *testing.T) {
	mt := mongoTable{
		Name: "widgets",
		Columns: []mongoColumn{
			{Name: "w_id", Type: "integer"},
			{Name: "w_price", Type: "decimal", Param1: 10, Param2: 2},
			{Name: "w_name", Type: "varchar", Param1: 40, Nullable: true},
		},
	}
	tbl, err := mt.toTable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Name != "widgets" || len(tbl.Columns) != 3 {
		t.Fatalf("got %+v", tbl)
	}
	if tbl.Columns[2].Type.IsNullable() != true {
		t.Errorf("expected w_name to be nullable")
	}
}

func TestMongoTableToTableRejectsUnknownType(t *testing.T) {
	mt := mongoTable{Name: "widgets", Columns: []mongoColumn{{Name: "bad", Type: "blob"}}}
	if _, err := mt.toTable(); err == nil {
		t.Fatal("expected an error for an unrecognised column type")
	}
}

func TestTPCHHasCoreTables(t *testing.T) {
	cat := TPCH()
	for _, name := range []string{"region", "nation", "supplier", "customer", "part", "partsupp", "orders", "lineitem"} {
		if cat.LookupTable(name) == nil {
			t.Errorf("expected TPCH schema to contain table %q", name)
		}
	}
	orders := cat.LookupTable("orders")
	if len(orders.Columns) != 9 {
		t.Errorf("expected orders to have 9 columns, got %d", len(orders.Columns))
	}
}
