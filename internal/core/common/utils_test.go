package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseObject(t *testing.T) {
	obj, err := ParseObject("  {\"anxiety\": 0.8}\n")
	require.NoError(t, err)
	assert.Equal(t, 0.8, obj.Get("anxiety").Num)
}

func TestParseObjectRejectsWrappedOutput(t *testing.T) {
	cases := []string{
		"",
		"Here you go: {\"anxiety\": 0.8}",
		"```json\n{\"anxiety\": 0.8}\n```",
		"[{\"anxiety\": 0.8}]",
	}
	for _, c := range cases {
		_, err := ParseObject(c)
		assert.ErrorIs(t, err, ErrNotObject, c)
	}
}

func TestParseObjectRejectsInvalidJSON(t *testing.T) {
	_, err := ParseObject("{anxiety: 0.8}")
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParseObject("{\"a\": 1} {\"b\": 2}")
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestFloat(t *testing.T) {
	obj := gjson.Parse(`{"n": 0.25, "s": " 0.5 ", "bad": "high", "b": true, "z": null, "o": {}}`)

	f, ok := Float(obj.Get("n"))
	assert.True(t, ok)
	assert.Equal(t, 0.25, f)

	f, ok = Float(obj.Get("s"))
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	for _, key := range []string{"bad", "b", "z", "o"} {
		_, ok = Float(obj.Get(key))
		assert.False(t, ok, key)
	}
}
