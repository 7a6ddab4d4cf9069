package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/SscSPs/transaction_service/internal/repositories/database/sqlquery"
	moderncsqlite "modernc.org/sqlite"
)

func init() {
	if err := moderncsqlite.RegisterDeterministicScalarFunction(sqlquery.UnicodeLowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", sqlquery.UnicodeLowerFunc, err))
	}
}

// unicodeLower folds its argument with strings.ToLower, matching the in-memory filter.
func unicodeLower(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", sqlquery.UnicodeLowerFunc, v)
	}
}
