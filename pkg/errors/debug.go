package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump is the structured view of an error logged by the recoverer and
// the seed command. Driver fields are filled from the first postgres or sqlite
// error found in the chain.
type ErrorDump struct {
	Message string   `json:"message"`
	Code    Code     `json:"code,omitempty"`
	Chain   []string `json:"chain,omitempty"`

	Postgres *PostgresFields `json:"postgres,omitempty"`
	SQLite   *SQLiteFields   `json:"sqlite,omitempty"`
}

// PostgresFields come from pgconn.PgError or pq.Error.
type PostgresFields struct {
	Code       string `json:"code"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

// SQLiteFields come from sqlite3.Error.
type SQLiteFields struct {
	Code         int    `json:"code"`
	ExtendedCode int    `json:"extended_code"`
	Message      string `json:"message,omitempty"`
}

// Dump flattens err for logging. A nil error yields the zero dump.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{Message: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.Postgres = postgresFields(err)
	if d.Postgres == nil {
		d.SQLite = sqliteFields(err)
	}
	return d
}

func postgresFields(err error) *PostgresFields {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PostgresFields{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PostgresFields{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}

func sqliteFields(err error) *SQLiteFields {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	return &SQLiteFields{
		Code:         int(sqliteErr.Code),
		ExtendedCode: int(sqliteErr.ExtendedCode),
		Message:      sqliteErr.Error(),
	}
}
