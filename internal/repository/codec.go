package repository

import "encoding/json"

// EncodeJSON serializes a state value for key/value collaborators.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeJSON decodes a stored value for key, reporting undecodable data as ErrMalformed.
func DecodeJSON[T any](key string, data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, Malformed(key, err)
	}
	return v, nil
}
