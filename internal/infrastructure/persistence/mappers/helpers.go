// Package mappers converts between persistence models and domain entities.
package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func marshalMetadata(metadata map[string]interface{}) (datatypes.JSON, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

func unmarshalMetadata(raw datatypes.JSON) (map[string]interface{}, error) {
	var metadata map[string]interface{}
	if raw != nil {
		if err := json.Unmarshal(raw, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return metadata, nil
}
