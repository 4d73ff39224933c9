package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// LowerFunc folds case with full Unicode rules. The built-in LOWER only folds ASCII.
const LowerFunc = "unicode_lower"

func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(LowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Open opens (or creates) a SQLite database file. Concurrent writers wait on the
// busy timeout instead of failing with SQLITE_BUSY.
func Open(path string, cfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}
