package store

import "encoding/json"

// LoadList reads the JSON array stored under key. A missing key or
// malformed stored JSON yields an empty list: a corrupt value resets
// that key's state rather than surfacing an error to the user.
func LoadList[T any](kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}

	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// SaveList writes list as a JSON array under key.
func SaveList[T any](kv KV, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return kv.Put(key, string(raw))
}
