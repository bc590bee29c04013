package errors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump is the log-only view of an error: the wrap chain plus whatever
// the database driver reported. It is never written to clients.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	DBDriver  string `json:"db_driver,omitempty"`
	DBCode    string `json:"db_code,omitempty"`
	DBTable   string `json:"db_table,omitempty"`
	DBDetail  string `json:"db_detail,omitempty"`
	DBHint    string `json:"db_hint,omitempty"`
	DBMessage string `json:"db_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgxErr):
		d.DBDriver = "pgx"
		d.DBCode = pgxErr.Code
		d.DBTable = pgxErr.TableName
		d.DBDetail = pgxErr.Detail
		d.DBHint = pgxErr.Hint
		d.DBMessage = pgxErr.Message
	case errors.As(err, &pqErr):
		d.DBDriver = "pq"
		d.DBCode = string(pqErr.Code)
		d.DBTable = pqErr.Table
		d.DBDetail = pqErr.Detail
		d.DBHint = pqErr.Hint
		d.DBMessage = pqErr.Message
	case errors.As(err, &liteErr):
		d.DBDriver = "sqlite3"
		d.DBCode = strconv.Itoa(int(liteErr.ExtendedCode))
		d.DBMessage = liteErr.Error()
	}
	return d
}
