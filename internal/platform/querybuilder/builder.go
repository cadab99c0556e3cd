package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and its positional args. Placeholders are
// numbered in bind order, so clauses must be rendered left to right.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.sql.WriteByte('$')
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

// expr copies a fragment, binding one arg per '?'.
func (s *statement) expr(fragment string, args []any) error {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] != '?' {
			s.sql.WriteByte(fragment[i])
			continue
		}
		if next >= len(args) {
			return fmt.Errorf("fragment %q has more placeholders than args", fragment)
		}
		s.bind(args[next])
		next++
	}
	if next != len(args) {
		return fmt.Errorf("fragment %q binds %d of %d args", fragment, next, len(args))
	}
	return nil
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *statement) result() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

type Condition interface {
	render(s *statement)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition { return eq{column: column, value: value} }

func (c eq) render(s *statement) {
	s.write(c.column, " = ")
	s.bind(c.value)
}

type isNull string

func IsNull(column string) Condition { return isNull(column) }

func (c isNull) render(s *statement) { s.write(string(c), " IS NULL") }

type inStrings struct {
	column string
	values []string
}

// InStrings matches column against a set of ids. An empty set matches nothing.
func InStrings(column string, values []string) Condition {
	return inStrings{column: column, values: values}
}

func (c inStrings) render(s *statement) {
	if len(c.values) == 0 {
		s.write("1=0")
		return
	}
	s.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			s.write(", ")
		}
		s.bind(v)
	}
	s.write(")")
}

var errNoTable = errors.New("table is required")

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	orderBy   []string
	limit     int
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

// ForUpdate row-locks the selected rows until the transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errors.New("select: columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: %w", errNoTable)
	}

	var s statement
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.forUpdate {
		s.write(" FOR UPDATE")
	}
	return s.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Row sets the single row to insert. Columns and values pair up by index.
func (b *InsertBuilder) Row(columns []string, values []any) *InsertBuilder {
	b.columns = columns
	b.values = values
	return b
}

// Suffix appends a trailing clause such as ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert: %w", errNoTable)
	}
	if len(b.columns) == 0 {
		return "", nil, errors.New("insert: columns are required")
	}
	if len(b.columns) != len(b.values) {
		return "", nil, fmt.Errorf("insert: %d columns but %d values", len(b.columns), len(b.values))
	}

	var s statement
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES (")
	for i, v := range b.values {
		if i > 0 {
			s.write(", ")
		}
		s.bind(v)
	}
	s.write(")")
	if b.suffix != "" {
		s.write(" ", b.suffix)
	}
	return s.result()
}

type assignment struct {
	column string
	value  any
	expr   string
	args   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression; each '?' in expr binds the next arg.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update: %w", errNoTable)
	}
	if len(b.sets) == 0 {
		return "", nil, errors.New("update: nothing to set")
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("update: refusing to update without where")
	}

	var s statement
	s.write("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(a.column, " = ")
		if a.expr == "" {
			s.bind(a.value)
			continue
		}
		if err := s.expr(a.expr, a.args); err != nil {
			return "", nil, fmt.Errorf("update %s: %w", a.column, err)
		}
	}
	s.where(b.where)
	return s.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete: %w", errNoTable)
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("delete: refusing to delete without where")
	}

	var s statement
	s.write("DELETE FROM ", b.table)
	s.where(b.where)
	return s.result()
}
