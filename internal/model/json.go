package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores a []string in a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return errors.New("unsupported type for StringList")
		}
	}
	return json.Unmarshal(data, l)
}

// JSONMap stores a free-form object in a JSON column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return errors.New("unsupported type for JSONMap")
		}
	}
	return json.Unmarshal(data, m)
}
