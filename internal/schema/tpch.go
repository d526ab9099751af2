package schema

import "github.com/ravelin-sql/saneql/internal/types"

// TPCH returns the standard 8-table TPC-H catalogue, the schema the
// command-line driver compiles against.
func TPCH() Catalogue {
	dec := func(p, s int) types.Type { return types.DecimalType(p, s) }
	i := types.IntegerType
	vc := types.VarcharType
	dt := types.DateType

	return NewStaticCatalogue(
		Table{Name: "region", Columns: []Column{
			{"r_regionkey", i()},
			{"r_name", vc(25)},
			{"r_comment", vc(152)},
		}},
		Table{Name: "nation", Columns: []Column{
			{"n_nationkey", i()},
			{"n_name", vc(25)},
			{"n_regionkey", i()},
			{"n_comment", vc(152)},
		}},
		Table{Name: "supplier", Columns: []Column{
			{"s_suppkey", i()},
			{"s_name", vc(25)},
			{"s_address", vc(40)},
			{"s_nationkey", i()},
			{"s_phone", vc(15)},
			{"s_acctbal", dec(15, 2)},
			{"s_comment", vc(101)},
		}},
		Table{Name: "customer", Columns: []Column{
			{"c_custkey", i()},
			{"c_name", vc(25)},
			{"c_address", vc(40)},
			{"c_nationkey", i()},
			{"c_phone", vc(15)},
			{"c_acctbal", dec(15, 2)},
			{"c_mktsegment", vc(10)},
			{"c_comment", vc(117)},
		}},
		Table{Name: "part", Columns: []Column{
			{"p_partkey", i()},
			{"p_name", vc(55)},
			{"p_mfgr", vc(25)},
			{"p_brand", vc(10)},
			{"p_type", vc(25)},
			{"p_size", i()},
			{"p_container", vc(10)},
			{"p_retailprice", dec(15, 2)},
			{"p_comment", vc(23)},
		}},
		Table{Name: "partsupp", Columns: []Column{
			{"ps_partkey", i()},
			{"ps_suppkey", i()},
			{"ps_availqty", i()},
			{"ps_supplycost", dec(15, 2)},
			{"ps_comment", vc(199)},
		}},
		Table{Name: "orders", Columns: []Column{
			{"o_orderkey", i()},
			{"o_custkey", i()},
			{"o_orderstatus", vc(1)},
			{"o_totalprice", dec(15, 2)},
			{"o_orderdate", dt()},
			{"o_orderpriority", vc(15)},
			{"o_clerk", vc(15)},
			{"o_shippriority", i()},
			{"o_comment", vc(79)},
		}},
		Table{Name: "lineitem", Columns: []Column{
			{"l_orderkey", i()},
			{"l_partkey", i()},
			{"l_suppkey", i()},
			{"l_linenumber", i()},
			{"l_quantity", dec(15, 2)},
			{"l_extendedprice", dec(15, 2)},
			{"l_discount", dec(15, 2)},
			{"l_tax", dec(15, 2)},
			{"l_returnflag", vc(1)},
			{"l_linestatus", vc(1)},
			{"l_shipdate", dt()},
			{"l_commitdate", dt()},
			{"l_receiptdate", dt()},
			{"l_shipinstruct", vc(25)},
			{"l_shipmode", vc(10)},
			{"l_comment", vc(44)},
		}},
	)
}
