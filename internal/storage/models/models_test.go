package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToJSON(t *testing.T) {
	data, err := MapToJSON(map[string]interface{}{"section_count": 3, "mode": SourceModeFreeText})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded), "产出的JSON应该可以反解")
	assert.Equal(t, "free_text", decoded["mode"])
	assert.Equal(t, float64(3), decoded["section_count"])
}

func TestStructToJSON(t *testing.T) {
	payload := struct {
		DocumentUUID string `json:"document_uuid"`
		SectionCount int    `json:"section_count"`
	}{DocumentUUID: "uuid-1", SectionCount: 5}

	data, err := StructToJSON(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), "uuid-1")
	assert.Contains(t, string(data), "\"section_count\":5")
}
