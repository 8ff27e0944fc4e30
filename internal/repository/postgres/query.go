package postgres

import (
	"fmt"
	"strings"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// predicates accumulates AND-ed WHERE clauses with numbered placeholders.
// Values only ever travel as args, never in the SQL text.
type predicates struct {
	clauses []string
	args    []any
}

// add appends a clause whose single placeholder is written as %d, e.g. "user_id = $%d".
func (p *predicates) add(clause string, arg any) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, fmt.Sprintf(clause, len(p.args)))
}

// addRaw appends a clause without arguments.
func (p *predicates) addRaw(clause string) {
	p.clauses = append(p.clauses, clause)
}

// next returns the placeholder number for the next argument.
func (p *predicates) next() int {
	return len(p.args) + 1
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.clauses, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
