package modules

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

const (
	connectionType = "DatabaseConnection"
	cursorType     = "DatabaseCursor"
)

// sqliteCursor buffers the rows of the last query until fetchall.
type sqliteCursor struct {
	db   *sql.DB
	rows []runtime.Value
}

// SQLite returns the sqlite module:
//
//	VAR conn = sqlite::connect(":memory:")
//	VAR cur = sqlite::cursor(conn)
//	sqlite::execute(cur, "SELECT 1")
//	sqlite::fetchall(cur)
func SQLite() *Module {
	return New("sqlite").
		Func("connect", []string{"path"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			path, err := stringArg(call, "connect", args, 0)
			if err != nil {
				return nil, err
			}
			db, err := sql.Open("sqlite", path)
			if err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "sqlite: %v", err)
			}
			// One connection keeps ":memory:" databases visible across calls.
			db.SetMaxOpenConns(1)
			if err := db.Ping(); err != nil {
				db.Close()
				return nil, call.Errorf(diagnostics.RuntimeError, "sqlite: %v", err)
			}
			return &runtime.Handle{TypeName: connectionType, Value: db}, nil
		}).
		Func("cursor", []string{"connection"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			h, err := handleArg(call, "cursor", args, 0, connectionType)
			if err != nil {
				return nil, err
			}
			return &runtime.Handle{TypeName: cursorType, Value: &sqliteCursor{db: h.Value.(*sql.DB)}}, nil
		}).
		FuncOpt("execute", []string{"cursor", "query"}, []string{"params"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			h, err := handleArg(call, "execute", args, 0, cursorType)
			if err != nil {
				return nil, err
			}
			query, err := stringArg(call, "execute", args, 1)
			if err != nil {
				return nil, err
			}
			var params []any
			if len(args) > 2 {
				list, err := listArg(call, "execute", args, 2)
				if err != nil {
					return nil, err
				}
				for _, item := range list.Elements() {
					p, err := sqlParam(item)
					if err != nil {
						return nil, call.Error(diagnostics.RuntimeError, err.Error())
					}
					params = append(params, p)
				}
			}
			cur := h.Value.(*sqliteCursor)
			if err := cur.execute(query, params); err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "sqlite: %v", err)
			}
			return runtime.NewNull(), nil
		}).
		Func("fetchall", []string{"cursor"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			h, err := handleArg(call, "fetchall", args, 0, cursorType)
			if err != nil {
				return nil, err
			}
			cur := h.Value.(*sqliteCursor)
			rows := runtime.NewList(cur.rows...)
			cur.rows = nil
			return rows, nil
		}).
		Func("close", []string{"connection"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			h, err := handleArg(call, "close", args, 0, connectionType)
			if err != nil {
				return nil, err
			}
			if err := h.Value.(*sql.DB).Close(); err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "sqlite: %v", err)
			}
			return runtime.NewNull(), nil
		})
}

func (c *sqliteCursor) execute(query string, params []any) error {
	c.rows = nil
	if !returnsRows(query) {
		_, err := c.db.Exec(query, params...)
		return err
	}
	rows, err := c.db.Query(query, params...)
	if err != nil {
		return err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		row := runtime.NewList()
		for _, v := range raw {
			row.Append(sqlValue(v))
		}
		c.rows = append(c.rows, row)
	}
	return rows.Err()
}

func returnsRows(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	for _, prefix := range []string{"SELECT", "WITH", "PRAGMA", "VALUES", "EXPLAIN"} {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return strings.Contains(q, "RETURNING")
}

func sqlValue(v any) runtime.Value {
	switch val := v.(type) {
	case nil:
		return runtime.NewNull()
	case int64:
		return runtime.NewInt(int(val))
	case float64:
		return runtime.NewFloat(val)
	case bool:
		return runtime.NewBool(val)
	case []byte:
		return runtime.NewString(string(val))
	case string:
		return runtime.NewString(val)
	case time.Time:
		return runtime.NewString(val.Format(time.RFC3339Nano))
	}
	return runtime.NewString(fmt.Sprint(v))
}

func sqlParam(v runtime.Value) (any, error) {
	switch val := runtime.Resolve(v).(type) {
	case runtime.Null:
		return nil, nil
	case runtime.Number:
		if i, ok := val.Int(); ok && !val.Float {
			return int64(i), nil
		}
		return val.Val, nil
	case runtime.Boolean:
		return val.Val, nil
	case runtime.String:
		return val.Val, nil
	}
	return nil, fmt.Errorf("Unsupported query parameter of type %s", v.Kind())
}
