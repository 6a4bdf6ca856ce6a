package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"

	"foodadmin/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// NullInt64 stores an optional foreign key without wiping existing data.
func NullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// NullIfEmpty helps store optional strings.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

const mysqlDuplicateEntry = 1062

// mapWriteError converts driver-level uniqueness violations that the
// handler's pre-check raced past into the conflict taxonomy; everything else
// is internal.
func mapWriteError(resource string, err error) error {
	if err == nil {
		return nil
	}
	var my *mysql.MySQLError
	if errors.As(err, &my) && my.Number == mysqlDuplicateEntry {
		return domain.ConflictError{Resource: resource, Msg: "duplicate entry", Err: err}
	}
	return domain.InternalError{Msg: resource + " write failed", Err: err}
}

func mapReadError(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return domain.InternalError{Msg: resource + " query failed", Err: err}
}

// decodeJSON tolerates NULL columns; a bad payload yields the zero value
// rather than failing the whole row.
func decodeJSON[T any](raw []byte, out *T) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}

func encodeJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}
