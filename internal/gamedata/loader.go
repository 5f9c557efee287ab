package gamedata

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a JSON document into T. source names the document in
// error messages, e.g. "data/modules.json".
func Decode[T any](source string, content []byte) (T, error) {
	var result T

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", source, err)
	}

	return result, nil
}
