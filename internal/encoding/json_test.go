package encoding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	out, err := MarshalJSON(map[string]interface{}{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out), "no trailing newline")
}

func TestMarshalJSON_Nil(t *testing.T) {
	_, err := MarshalJSON(nil)
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestMarshalJSON_Unencodable(t *testing.T) {
	_, err := MarshalJSON(func() {})
	assert.ErrorIs(t, err, ErrEncodingFailed)
}

func TestUnmarshalJSON_UsesNumber(t *testing.T) {
	var decoded map[string]interface{}
	require.NoError(t, UnmarshalJSON([]byte(`{"big": 12345678901234567890}`), &decoded))

	num, ok := decoded["big"].(json.Number)
	require.True(t, ok, "numbers must decode as json.Number")
	assert.Equal(t, "12345678901234567890", num.String())
}

func TestUnmarshalJSON_Empty(t *testing.T) {
	var decoded map[string]interface{}
	assert.NoError(t, UnmarshalJSON(nil, &decoded))
	assert.Nil(t, decoded)
}

func TestUnmarshalJSON_Malformed(t *testing.T) {
	var decoded map[string]interface{}
	err := UnmarshalJSON([]byte(`{`), &decoded)
	assert.ErrorIs(t, err, ErrDecodingFailed)
}
