package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raworc/raworc-mcp/schema"
)

func TestValidateArguments(t *testing.T) {
	params := []Param{
		{Name: "name", Type: schema.String, Required: true},
		{Name: "count", Type: schema.Integer},
		{Name: "ratio", Type: schema.Number},
		{Name: "enabled", Type: schema.Boolean},
		{Name: "metadata", Type: schema.Object},
		{Name: "tags", Type: schema.Array},
	}

	raw := json.RawMessage(`{
		"name": "demo",
		"count": 3,
		"ratio": 0.5,
		"enabled": true,
		"metadata": {"k": "v"},
		"tags": ["a", "b"]
	}`)

	args, verr := validateArguments(params, raw)
	require.Nil(t, verr)

	assert.Equal(t, "demo", args.Str("name"))
	count, ok := args.Int("count")
	require.True(t, ok)
	assert.Equal(t, int64(3), count)
	enabled, ok := args.Bool("enabled")
	require.True(t, ok)
	assert.True(t, enabled)
	assert.Equal(t, map[string]any{"k": "v"}, args.Object("metadata"))
	assert.Equal(t, []string{"a", "b"}, args.StrSlice("tags"))
}

func TestValidateArgumentsMissingRequired(t *testing.T) {
	params := []Param{{Name: "name", Type: schema.String, Required: true}}

	_, verr := validateArguments(params, json.RawMessage(`{}`))
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Param)
	assert.Equal(t, "missing required parameter: name", verr.Error())
}

func TestValidateArgumentsNullIsAbsent(t *testing.T) {
	params := []Param{{Name: "name", Type: schema.String, Required: true}}

	_, verr := validateArguments(params, json.RawMessage(`{"name": null}`))
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Param)
}

func TestValidateArgumentsWrongType(t *testing.T) {
	tests := []struct {
		name string
		typ  schema.Type
		raw  string
	}{
		{"string gets number", schema.String, `{"v": 1}`},
		{"boolean gets string", schema.Boolean, `{"v": "true"}`},
		{"number gets string", schema.Number, `{"v": "0.5"}`},
		{"integer gets fraction", schema.Integer, `{"v": 1.5}`},
		{"object gets array", schema.Object, `{"v": []}`},
		{"array gets object", schema.Array, `{"v": {}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := []Param{{Name: "v", Type: tc.typ}}
			_, verr := validateArguments(params, json.RawMessage(tc.raw))
			require.NotNil(t, verr)
			assert.Equal(t, "v", verr.Param)
			assert.Contains(t, verr.Error(), "invalid type for parameter v")
		})
	}
}

func TestValidateArgumentsIntegerAcceptsWholeFloat(t *testing.T) {
	params := []Param{{Name: "limit", Type: schema.Integer}}

	args, verr := validateArguments(params, json.RawMessage(`{"limit": 10.0}`))
	require.Nil(t, verr)
	limit, ok := args.Int("limit")
	require.True(t, ok)
	assert.Equal(t, int64(10), limit)
}

func TestValidateArgumentsNumberAcceptsFraction(t *testing.T) {
	params := []Param{{Name: "limit", Type: schema.Number}}

	args, verr := validateArguments(params, json.RawMessage(`{"limit": 2.7}`))
	require.Nil(t, verr)
	limit, ok := args.Num("limit")
	require.True(t, ok)
	assert.Equal(t, 2.7, limit)
}

func TestValidateArgumentsArrayItems(t *testing.T) {
	params := []Param{{Name: "rules", Type: schema.Array, Items: schema.Object}}

	_, verr := validateArguments(params, json.RawMessage(`{"rules": [{"a":1}, {"b":2}]}`))
	require.Nil(t, verr)

	_, verr = validateArguments(params, json.RawMessage(`{"rules": [{"a":1}, "not-an-object"]}`))
	require.NotNil(t, verr)
	assert.Equal(t, "rules", verr.Param)
}

func TestValidateArgumentsArrayDefaultsToStringItems(t *testing.T) {
	params := []Param{{Name: "tags", Type: schema.Array}}

	_, verr := validateArguments(params, json.RawMessage(`{"tags": ["a", "b"]}`))
	require.Nil(t, verr)

	_, verr = validateArguments(params, json.RawMessage(`{"tags": [1, 2]}`))
	require.NotNil(t, verr)
}

func TestValidateArgumentsUnknownKeysIgnored(t *testing.T) {
	params := []Param{{Name: "name", Type: schema.String, Required: true}}

	args, verr := validateArguments(params, json.RawMessage(`{"name": "x", "extra": 42}`))
	require.Nil(t, verr)
	assert.Equal(t, "x", args.Str("name"))
	_, present := args["extra"]
	assert.False(t, present, "unknown keys never reach the handler")
}

func TestValidateArgumentsDefaultApplied(t *testing.T) {
	params := []Param{{Name: "space", Type: schema.String, Default: "default"}}

	args, verr := validateArguments(params, json.RawMessage(`{}`))
	require.Nil(t, verr)
	assert.Equal(t, "default", args.Str("space"))

	args, verr = validateArguments(params, json.RawMessage(`{"space": "prod"}`))
	require.Nil(t, verr)
	assert.Equal(t, "prod", args.Str("space"))
}

func TestValidateArgumentsNotAnObject(t *testing.T) {
	_, verr := validateArguments(nil, json.RawMessage(`[1,2,3]`))
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "arguments must be a JSON object")
}

func TestValidateArgumentsEmpty(t *testing.T) {
	params := []Param{{Name: "space", Type: schema.String}}

	args, verr := validateArguments(params, nil)
	require.Nil(t, verr)
	assert.Empty(t, args.Str("space"))
}
