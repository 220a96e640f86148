package model

import "encoding/json"

// OptionalString records whether a JSON field was present at all,
// distinguishing an omitted field from an explicit null or empty string.
// Partial updates need all three cases: omitted leaves the stored value
// untouched, null clears it, a string replaces it.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked for fields present in the payload, so Set
// marks presence. A JSON null leaves Value nil.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// String returns the contained value, or "" when absent or null.
func (o OptionalString) String() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}
