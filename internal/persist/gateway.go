// Package persist executes parameterized write statements on behalf of the
// calculation flow, either against the local store or a remote endpoint.
package persist

import (
	"context"
	"errors"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/gravitdam/gravitdam/internal/store"
)

// Statement is a single positional-parameter statement. It is also the JSON
// body accepted by the HTTP endpoint.
type Statement struct {
	Query  string `json:"query"`
	Values []any  `json:"values"`
}

// Gateway executes statements. Implementations never return rows.
type Gateway interface {
	Execute(ctx context.Context, stmt Statement) error
}

var (
	// ErrStatementNotAllowed is returned for statements outside the allowlist.
	ErrStatementNotAllowed = errors.New("statement not allowed")

	// ErrArgumentCount is returned when the number of values does not match
	// the statement's placeholders.
	ErrArgumentCount = errors.New("wrong number of values for statement")
)

// InsertCalculationQuery is the only statement the gateway accepts:
// INSERT INTO `calculations` (`question`, `answer`, `created_at`) VALUES (?, ?, ?)
var InsertCalculationQuery = func() string {
	q, _ := entsql.Dialect(dialect.SQLite).
		Insert(store.CalculationsTableName).
		Columns(store.ColumnQuestion, store.ColumnAnswer, store.ColumnCreatedAt).
		Values("", "", "").
		Query()
	return q
}()

// InsertCalculation builds the calculation insert statement.
func InsertCalculation(question, answer, createdAt string) Statement {
	return Statement{
		Query:  InsertCalculationQuery,
		Values: []any{question, answer, createdAt},
	}
}

// Allowlist holds the statements a gateway is willing to run, compared after
// whitespace normalization.
type Allowlist map[string]struct{}

// DefaultAllowlist accepts only the calculation insert.
func DefaultAllowlist() Allowlist {
	return NewAllowlist(InsertCalculationQuery)
}

// NewAllowlist builds an allowlist from raw statements.
func NewAllowlist(queries ...string) Allowlist {
	a := make(Allowlist, len(queries))
	for _, q := range queries {
		a[normalize(q)] = struct{}{}
	}
	return a
}

// Check verifies stmt is allowlisted and carries one value per placeholder.
func (a Allowlist) Check(stmt Statement) error {
	q := normalize(stmt.Query)
	if _, ok := a[q]; !ok {
		return ErrStatementNotAllowed
	}
	if strings.Count(q, "?") != len(stmt.Values) {
		return ErrArgumentCount
	}
	return nil
}

func normalize(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
