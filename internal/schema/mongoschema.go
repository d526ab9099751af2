package schema

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ravelin-sql/saneql/internal/types"
)

// mongoColumn is the wire shape of one entry in a table's "columns" array
// inside the schema collection.
type mongoColumn struct {
	Name     string `bson:"name"`
	Type     string `bson:"type"`
	Param1   int    `bson:"param1"`
	Param2   int    `bson:"param2"`
	Nullable bool   `bson:"nullable"`
}

// mongoTable is the wire shape of one document in the schema collection.
type mongoTable struct {
	Name    string        `bson:"name"`
	Columns []mongoColumn `bson:"columns"`
}

// LoadFromMongo reads a table catalogue out of a MongoDB collection where
// each document matches mongoTable's shape. This lets a deployment keep
// its SaneQL schema alongside its other metadata instead of compiling a
// Go catalogue, at the cost of one round trip at startup.
func LoadFromMongo(ctx context.Context, coll *mongo.Collection) (Catalogue, error) {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("schema: querying mongo collection: %w", err)
	}
	defer cur.Close(ctx)

	var tables []Table
	for cur.Next(ctx) {
		var mt mongoTable
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("schema: decoding table document: %w", err)
		}
		t, err := mt.toTable()
		if err != nil {
			return nil, fmt.Errorf("schema: table %q: %w", mt.Name, err)
		}
		tables = append(tables, t)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("schema: iterating mongo cursor: %w", err)
	}
	return NewStaticCatalogue(tables...), nil
}

func (mt mongoTable) toTable() (Table, error) {
	cols := make([]Column, 0, len(mt.Columns))
	for _, mc := range mt.Columns {
		typ, err := parseMongoType(mc)
		if err != nil {
			return Table{}, err
		}
		cols = append(cols, Column{Name: mc.Name, Type: typ})
	}
	return Table{Name: mt.Name, Columns: cols}, nil
}

func parseMongoType(mc mongoColumn) (types.Type, error) {
	var t types.Type
	switch mc.Type {
	case "bool":
		t = types.BoolType()
	case "integer":
		t = types.IntegerType()
	case "decimal":
		t = types.DecimalType(mc.Param1, mc.Param2)
	case "char":
		t = types.CharType(mc.Param1)
	case "varchar":
		t = types.VarcharType(mc.Param1)
	case "text":
		t = types.TextType()
	case "date":
		t = types.DateType()
	case "interval":
		t = types.IntervalType()
	default:
		return types.Type{}, fmt.Errorf("unknown column type %q", mc.Type)
	}
	return t.WithNullable(mc.Nullable), nil
}
