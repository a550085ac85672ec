package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a sequence of strings stored as a JSON array in a text
// column. Decoding is strict: anything that is not a JSON array of strings
// is an error, never evaluated or coerced.
type StringList []string

var (
	_ driver.Valuer = (StringList)(nil)
	_ sql.Scanner   = (*StringList)(nil)
)

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}

	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) (err error) {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		err = fmt.Errorf("cannot scan %T into StringList", src)
		return
	}

	var decoded []string
	if err = json.Unmarshal(raw, &decoded); err != nil {
		err = fmt.Errorf("malformed string list column: %w", err)
		return
	}

	*l = decoded
	return
}
