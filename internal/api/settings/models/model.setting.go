package settingsmodels

// Setting is one configuration entry (settings collection). The key doubles
// as the document id so reads and upserts stay single-key operations.
type Setting struct {
	Key       string      `json:"key" bson:"_id"`
	Value     interface{} `json:"value" bson:"value"`
	UpdatedBy string      `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt int64       `json:"updatedAt" bson:"updatedAt"` // unix ms
}
