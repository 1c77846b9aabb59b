package modelout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnmcm/philo-ai/internal/modelout"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"missing closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
		{"empty", "", ""},
		{"only fence", "```", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, modelout.StripFences(tc.in))
		})
	}
}

func TestUnmarshal(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, modelout.Unmarshal("```json\n{\"a\":7}\n```", &v))
	assert.Equal(t, 7, v.A)
}

func TestUnmarshalErrors(t *testing.T) {
	var v map[string]any

	err := modelout.Unmarshal("", &v)
	assert.ErrorContains(t, err, "empty model content")

	err = modelout.Unmarshal("I would pick Kant because duty matters.", &v)
	assert.ErrorContains(t, err, "not valid JSON")

	err = modelout.Unmarshal("```", &v)
	assert.ErrorContains(t, err, "empty model content")
}
