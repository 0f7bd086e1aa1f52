package wirecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple camelCase",
			input:    "taskId",
			expected: "task_id",
		},
		{
			name:     "multiple words",
			input:    "lastDataUploadTs",
			expected: "last_data_upload_ts",
		},
		{
			name:     "already snake_case",
			input:    "task_id",
			expected: "task_id",
		},
		{
			name:     "all lowercase without separators",
			input:    "timestamp",
			expected: "timestamp",
		},
		{
			name:     "acronym run splits at last capital",
			input:    "premiumAPIKey",
			expected: "premium_api_key",
		},
		{
			name:     "digit before capital",
			input:    "eth2Deposits",
			expected: "eth2_deposits",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnake(tt.input))
		})
	}
}

func TestToCamel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple snake_case",
			input:    "task_id",
			expected: "taskId",
		},
		{
			name:     "multiple words",
			input:    "last_data_upload_ts",
			expected: "lastDataUploadTs",
		},
		{
			name:     "no separators passes through",
			input:    "timestamp",
			expected: "timestamp",
		},
		{
			name:     "already camelCase passes through",
			input:    "taskId",
			expected: "taskId",
		},
		{
			name:     "consecutive separators collapse",
			input:    "usd__value",
			expected: "usdValue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCamel(tt.input))
		})
	}
}

func TestToWire(t *testing.T) {
	input := map[string]interface{}{
		"taskId": float64(7),
		"nested": map[string]interface{}{
			"usdValue": "1.5",
		},
		"items": []interface{}{
			map[string]interface{}{"startTs": float64(1)},
		},
	}

	out, ok := ToWire(input).(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, float64(7), out["task_id"])

	nested, ok := out["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1.5", nested["usd_value"])

	items, ok := out["items"].([]interface{})
	require.True(t, ok)
	first, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, first, "start_ts")
}

type opaquePayload map[string]interface{}

func (opaquePayload) WireOpaque() {}

func TestToWire_OpaqueUntouched(t *testing.T) {
	payload := opaquePayload{"keepMyCase": true}

	out, ok := ToWire(payload).(opaquePayload)
	require.True(t, ok)
	assert.Contains(t, out, "keepMyCase")
}

func TestFromWire(t *testing.T) {
	input := map[string]interface{}{
		"task_id": "42",
		"sub_result": map[string]interface{}{
			"end_ts": "1700000000",
			"label":  "ok",
		},
	}

	out, ok := FromWire(input, NewNumericKeys("task_id", "end_ts")).(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, json.Number("42"), out["taskId"])

	sub, ok := out["subResult"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, json.Number("1700000000"), sub["endTs"])
	assert.Equal(t, "ok", sub["label"])
}

func TestFromWire_Idempotent(t *testing.T) {
	input := map[string]interface{}{
		"task_id": "42",
		"already": map[string]interface{}{"camelKey": "v"},
	}

	once := FromWire(input, DefaultNumericKeys())
	twice := FromWire(once, DefaultNumericKeys())
	assert.Equal(t, once, twice)
}

func TestFromWire_NoPromotionWithoutAllowList(t *testing.T) {
	input := map[string]interface{}{"task_id": "42"}

	out, ok := FromWire(input, NoNumericKeys).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "42", out["taskId"])
}

func TestPromote(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{
			name:     "integer string",
			input:    "42",
			expected: json.Number("42"),
		},
		{
			name:     "high precision decimal survives",
			input:    "12345678901234567890.123456789",
			expected: json.Number("12345678901234567890.123456789"),
		},
		{
			name:     "non-numeric string unchanged",
			input:    "not-a-number",
			expected: "not-a-number",
		},
		{
			name:     "non-string unchanged",
			input:    true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, promote(tt.input))
		})
	}
}

func TestTransformJSON(t *testing.T) {
	raw := []byte(`{"task_id": "7", "usd_value": "100.25", "plain_field": "x"}`)

	out, err := TransformJSON(raw, NewNumericKeys("task_id", "usd_value"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, float64(7), decoded["taskId"])
	assert.Equal(t, 100.25, decoded["usdValue"])
	assert.Equal(t, "x", decoded["plainField"])
}

func TestTransformJSON_InvalidJSON(t *testing.T) {
	_, err := TransformJSON([]byte(`{`), NoNumericKeys)
	assert.Error(t, err)
}

func TestToWireJSON(t *testing.T) {
	type body struct {
		SyncApproval string `json:"syncApproval"`
		TaskID       int    `json:"taskId"`
	}

	out, err := ToWireJSON(body{SyncApproval: "yes", TaskID: 3})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "sync_approval")
	assert.Contains(t, decoded, "task_id")
}

func TestRoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"taskId": "7",
		"nested": map[string]interface{}{"usdValue": "1.5"},
	}

	back := FromWire(ToWire(original), NoNumericKeys)
	assert.Equal(t, original, back)
}
