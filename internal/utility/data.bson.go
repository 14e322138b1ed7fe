// Package utility contains shared helpers: BSON conversion, date
// normalization and the Firebase admin client.
package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap converts a struct (or map) to map[string]interface{} through a BSON
// round-trip so field names follow the bson struct tags, matching what the
// driver would persist.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var result map[string]interface{}

	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}

	return result, nil
}
