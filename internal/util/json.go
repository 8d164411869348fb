package util

import "encoding/json"

// ConvertStructToJson marshals v, returning "{}" when v cannot be encoded.
func ConvertStructToJson(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
