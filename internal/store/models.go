package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CategoryRating is one business-category-specific rating.
type CategoryRating struct {
	Field  string `json:"field"`
	Rating int    `json:"rating"`
}

// CategoryRatings keeps submission order and is stored as a JSONB array.
type CategoryRatings []CategoryRating

// Value implements driver.Valuer
func (c CategoryRatings) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *CategoryRatings) Scan(value interface{}) error {
	if value == nil {
		*c = CategoryRatings{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CategoryRatings", value)
	}

	return json.Unmarshal(data, c)
}

// Get returns the rating for a field.
func (c CategoryRatings) Get(field string) (int, bool) {
	for _, r := range c {
		if r.Field == field {
			return r.Rating, true
		}
	}
	return 0, false
}
