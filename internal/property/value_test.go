package property

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndefinedIsDistinctFromMissing(t *testing.T) {
	bag := Bag{"value": Undefined()}

	data, err := json.Marshal(bag)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":{"type":"undefined"}}`, string(data))

	var decoded Bag
	require.NoError(t, json.Unmarshal(data, &decoded))

	v, present := decoded["value"]
	assert.True(t, present, "undefined key must survive the round trip")
	assert.True(t, v.IsUndefined())

	_, present = decoded["other"]
	assert.False(t, present)
}

func TestUnmarshalTaggedValues(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Value
	}{
		{"string", `{"type":"string","value":"hi"}`, String("hi")},
		{"number", `{"type":"number","value":2.5}`, Number(2.5)},
		{"bool", `{"type":"bool","value":true}`, Bool(true)},
		{"bytes", `{"type":"bytes","value":"aGVsbG8="}`, Bytes([]byte("hello"))},
		{"array", `{"type":"array","value":[{"type":"string","value":"a"},{"type":"undefined"}]}`, Array(String("a"), Undefined())},
		{"object", `{"type":"object","value":{"k":{"type":"number","value":1}}}`, Object(map[string]Value{"k": Number(1)})},
		{"undefined", `{"type":"undefined"}`, Undefined()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Value
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Truef(t, tt.want.Equal(got), "got %#v, want %#v", got, tt.want)
		})
	}
}

func TestUnmarshalRejectsBadPayloads(t *testing.T) {
	for _, in := range []string{
		`{"type":"whatever","value":1}`,
		`{"type":"string"}`,
		`{"type":"number","value":"1"}`,
		`{"value":1}`,
		`tru`,
	} {
		var v Value
		assert.Error(t, json.Unmarshal([]byte(in), &v), in)
	}
}

func TestUnmarshalPlainValues(t *testing.T) {
	var bag Bag
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "x",
		"n": 3,
		"on": false,
		"tags": ["a", "b"],
		"gone": null,
		"tagged": {"type": "string", "value": "y"}
	}`), &bag))

	assert.True(t, bag["title"].Equal(String("x")))
	assert.True(t, bag["n"].Equal(Number(3)))
	assert.True(t, bag["on"].Equal(Bool(false)))
	assert.True(t, bag["tags"].Equal(Array(String("a"), String("b"))))
	assert.True(t, bag["tagged"].Equal(String("y")))

	v, present := bag["gone"]
	assert.True(t, present, "null keeps its key")
	assert.True(t, v.IsUndefined())

	_, err := FromAny(struct{}{})
	assert.Error(t, err)
}

func TestOptString(t *testing.T) {
	s := "value"
	assert.True(t, OptString(&s).Equal(String("value")))
	assert.True(t, OptString(nil).IsUndefined())
}
