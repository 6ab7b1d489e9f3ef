package sqlxrepos

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// toJSON encodes document columns (courses, categories, custom scales) stored as TEXT.
func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fromJSON(col string, v interface{}) error {
	if col == "" {
		return nil
	}
	return json.Unmarshal([]byte(col), v)
}

// checkAffected returns `notFound` when a write matched no row.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
