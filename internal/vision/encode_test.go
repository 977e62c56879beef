package vision

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImage(t *testing.T) {
	t.Run("round-trips arbitrary bytes", func(t *testing.T) {
		data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}

		encoded := EncodeImage(data)

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	})

	t.Run("output contains no newlines", func(t *testing.T) {
		// Large enough that line-wrapping encoders would insert breaks.
		data := make([]byte, 4096)
		for i := range data {
			data[i] = byte(i % 251)
		}

		encoded := EncodeImage(data)

		assert.NotContains(t, encoded, "\n")
		assert.NotContains(t, encoded, "\r")
	})

	t.Run("empty input yields empty string", func(t *testing.T) {
		assert.Equal(t, "", EncodeImage(nil))
	})
}

func TestDataURI(t *testing.T) {
	uri := DataURI("abc123")
	assert.Equal(t, "data:image/jpeg;base64,abc123", uri)
}

func TestEncodeAndBuildRequest_ProducesValidJSON(t *testing.T) {
	// Any image byte content must survive encode -> build -> marshal as a
	// syntactically valid JSON document.
	inputs := [][]byte{
		nil,
		{0x00},
		{0xFF, 0xD8, 0xFF},
		[]byte(strings.Repeat("\"\\\n", 100)),
	}

	for _, data := range inputs {
		request := BuildRequest(EncodeImage(data))

		raw, err := json.Marshal(request)
		require.NoError(t, err)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
}
