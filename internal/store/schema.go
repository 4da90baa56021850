package store

import (
	"fmt"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/liuk/ent/schema"
)

// Table names.
const (
	tableKV       = "kv"
	tableAttempts = "exam_attempts"
)

// table pairs a table name with the ent schema describing it. The first
// field is the primary key.
type table struct {
	name   string
	schema ent.Interface
}

var tables = []table{
	{name: tableKV, schema: schema.KV{}},
	{name: tableAttempts, schema: schema.ExamAttempt{}},
}

// schemaDDL renders CREATE statements for every table and index from the
// ent schema descriptors.
func schemaDDL() ([]string, error) {
	b := entsql.Dialect(dialect.SQLite)

	var stmts []string
	for _, t := range tables {
		fields := t.schema.Fields()
		if len(fields) == 0 {
			return nil, fmt.Errorf("table %s: no fields", t.name)
		}

		ct := b.CreateTable(t.name).IfNotExists()
		for _, f := range fields {
			d := f.Descriptor()
			typ, err := columnType(d.Info.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s column %s: %w", t.name, d.Name, err)
			}
			col := entsql.Column(d.Name).Type(typ)
			if !d.Optional {
				col = col.Attr("NOT NULL")
			}
			ct = ct.Column(col)
		}
		ct = ct.PrimaryKey(fields[0].Descriptor().Name)
		query, _ := ct.Query()
		stmts = append(stmts, query)

		for _, idx := range t.schema.Indexes() {
			d := idx.Descriptor()
			ci := b.CreateIndex(indexName(t.name, d.Fields)).IfNotExists().Table(t.name).Columns(d.Fields...)
			if d.Unique {
				ci = ci.Unique()
			}
			query, _ := ci.Query()
			stmts = append(stmts, query)
		}
	}
	return stmts, nil
}

func columnType(t field.Type) (string, error) {
	switch t {
	case field.TypeString, field.TypeUUID:
		return "TEXT", nil
	case field.TypeBool, field.TypeInt, field.TypeInt64:
		return "INTEGER", nil
	default:
		return "", fmt.Errorf("unsupported field type %s", t)
	}
}

func indexName(table string, fields []string) string {
	name := table
	for _, f := range fields {
		name += "_" + f
	}
	return name
}
