package diagnostics

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ExpectedTables is the schema the dashboard depends on.
var ExpectedTables = []string{
	"companies",
	"customers",
	"employees",
	"quotes",
	"policies",
	"claims",
	"deals",
	"commissions",
	"commission_installments",
	"renewals",
	"providers",
	"countries",
	"benefits",
	"profiles",
	"password_resets",
	"activities",
}

// TableStatus is the tri-state probe result. Only a missing-relation error
// maps to Exists=false; any other failure keeps Exists=true with Err set, a
// distinction the table checker page relies on.
type TableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`
	Err    string `json:"error,omitempty"`
}

// CheckTables probes each table with a one-row select.
func CheckTables(db *gorm.DB, tables []string) []TableStatus {
	out := make([]TableStatus, 0, len(tables))
	for _, table := range tables {
		err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1").Error
		switch {
		case err == nil:
			out = append(out, TableStatus{Table: table, Exists: true})
		case isMissingRelation(err):
			out = append(out, TableStatus{Table: table, Exists: false})
		default:
			out = append(out, TableStatus{Table: table, Exists: true, Err: err.Error()})
		}
	}
	return out
}

func isMissingRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "no such table")
}
