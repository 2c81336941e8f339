package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"nulls", Null(), Null(), true},
		{"int and float with same value", Int(1), Float(1), true},
		{"different strings", String("a"), String("b"), false},
		{"string and int", String("1"), Int(1), false},
		{"lists in order", List(Int(1), String("x")), List(Int(1), String("x")), true},
		{"lists out of order", List(Int(1), String("x")), List(String("x"), Int(1)), false},
		{
			"nested maps",
			Object(Map{"type": String("email"), "when": List(String("pipeline.failed"))}),
			Object(Map{"when": List(String("pipeline.failed")), "type": String("email")}),
			true,
		},
		{
			"extra key",
			Object(Map{"type": String("email")}),
			Object(Map{"type": String("email"), "inherited": Bool(true)}),
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
			assert.Equal(t, tc.equal, tc.b.Equal(tc.a))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	inner := Map{"address": String("a@x.com")}
	original := Map{"notification": Object(inner), "tags": List(String("a"))}

	c := original.Clone()
	cInner, ok := c["notification"].AsMap()
	require.True(t, ok)
	cInner["inherited"] = Bool(true)

	assert.False(t, inner.Has("inherited"))
	assert.True(t, original.Equal(Map{"notification": Object(Map{"address": String("a@x.com")}), "tags": List(String("a"))}))
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"name":    "deploy",
		"count":   3,
		"ratio":   0.5,
		"enabled": true,
		"stages":  []any{map[string]any{"type": "wait"}},
		"nothing": nil,
	})
	require.NoError(t, err)

	m, ok := v.AsMap()
	require.True(t, ok)
	n, _ := m["count"].AsInt()
	assert.EqualValues(t, 3, n)
	assert.Equal(t, NullKind, m["nothing"].Kind())

	stages, ok := m["stages"].AsList()
	require.True(t, ok)
	require.Len(t, stages, 1)
	assert.Equal(t, MapKind, stages[0].Kind())

	_, err = FromAny(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestYAMLRoundTrip(t *testing.T) {
	src := []byte(`
id: my-pipeline
limitConcurrent: false
maxConcurrentExecutions: 2
notifications:
  - type: email
    address: a@x.com
`)
	var m Map
	require.NoError(t, yaml.Unmarshal(src, &m))

	limit, ok := m["limitConcurrent"].AsBool()
	require.True(t, ok)
	assert.False(t, limit)

	notifications, ok := m["notifications"].AsList()
	require.True(t, ok)
	require.Len(t, notifications, 1)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)

	var again Map
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.True(t, m.Equal(again))
}

func TestJSONKeepsIntegers(t *testing.T) {
	var m Map
	require.NoError(t, json.Unmarshal([]byte(`{"maxConcurrentExecutions": 5, "ratio": 1.5, "trigger": null}`), &m))

	n, ok := m["maxConcurrentExecutions"].AsInt()
	require.True(t, ok)
	assert.EqualValues(t, 5, n)
	assert.Equal(t, FloatKind, m["ratio"].Kind())
	assert.True(t, m["trigger"].IsNull())

	out, err := json.Marshal(Map{"parameterConfig": Maps(nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"parameterConfig": []}`, string(out))
}
