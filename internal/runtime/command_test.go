package runtime

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		method  string
		params  string
		want    Command
		errCode int
	}{
		{MethodCreateWidget, `{"id":4,"type":"gauntlet:text_part","text":"hi"}`, CreateWidget{ID: 4, Type: "gauntlet:text_part", Text: "hi"}, 0},
		{MethodSetChildren, `{"parent":1,"children":[3,2]}`, SetChildren{Parent: 1, Children: []widget.ID{3, 2}}, 0},
		{MethodClearView, `{"location":"inlineView"}`, ClearView{Location: "inlineView"}, 0},
		{MethodAppendChild, ``, nil, CodeInvalidParams},
		{"render", `{}`, nil, CodeMethodNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := Decode(tt.method, json.RawMessage(tt.params))
			if tt.errCode != 0 {
				var rpcErr *Error
				require.True(t, errors.As(err, &rpcErr))
				assert.Equal(t, tt.errCode, rpcErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCreateWidgetWithNullProp(t *testing.T) {
	params := `{"id":1,"type":"gauntlet:list_item","props":{"title":{"type":"string","value":"x"},"subtitle":null,"keywords":["a"]}}`

	got, err := Decode(MethodCreateWidget, json.RawMessage(params))
	require.NoError(t, err)

	c, ok := got.(CreateWidget)
	require.True(t, ok)
	subtitle, present := c.Props["subtitle"]
	assert.True(t, present)
	assert.True(t, subtitle.IsUndefined())

	tr := tree.New(component.Default())
	require.NoError(t, Apply(tr, c))
	w, ok := tr.Get(1)
	require.True(t, ok)
	_, set := w.Props.OptString("subtitle")
	assert.False(t, set)
	assert.Equal(t, []string{"a"}, w.Props.Strings("keywords"))
}

func TestApplyTextPartsAndClear(t *testing.T) {
	tr := tree.New(component.Default())
	cmds := []Command{
		CreateWidget{ID: 1, Type: "gauntlet:root"},
		CreateWidget{ID: 2, Type: "gauntlet:inline"},
		CreateWidget{ID: 3, Type: "gauntlet:content"},
		CreateWidget{ID: 4, Type: "gauntlet:h1"},
		CreateWidget{ID: 5, Type: "gauntlet:text_part", Text: "42"},
		AppendChild{Parent: 4, Child: 5},
		AppendChild{Parent: 3, Child: 4},
		AppendChild{Parent: 2, Child: 3},
		AppendChild{Parent: 1, Child: 2},
		ReplaceView{Location: "inlineView", Root: 1},
	}
	for _, c := range cmds {
		require.NoError(t, Apply(tr, c), c.Method())
	}

	root, ok := tr.View(tree.LocationInlineView)
	require.True(t, ok)
	assert.Equal(t, "42", root.PlainText())

	require.NoError(t, Apply(tr, ClearView{Location: "inlineView"}))
	assert.Equal(t, 0, tr.Len())
}

func TestErrorKind(t *testing.T) {
	tr := tree.New(component.Default())
	err := Apply(tr, CreateWidget{ID: 1, Type: "gauntlet:list_item"})
	assert.Equal(t, "MissingRequiredProperty", ErrorKind(err))

	err = Apply(tr, AppendChild{Parent: 1, Child: 2})
	assert.Equal(t, "UnknownWidget", ErrorKind(err))

	assert.Equal(t, "Internal", ErrorKind(errors.New("boom")))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("GAUNTLET_TEST_HOME", "/opt/gauntlet")

	assert.Equal(t, "/opt/gauntlet/bin/runtime", ExpandEnv("${GAUNTLET_TEST_HOME}/bin/runtime"))
	assert.Equal(t, "fallback", ExpandEnv("${GAUNTLET_TEST_UNSET:-fallback}"))
	assert.Equal(t, "/opt/gauntlet", ExpandEnv("${GAUNTLET_TEST_HOME:-fallback}"))
	assert.Nil(t, ExpandEnvSlice(nil))

	env := BuildEnv(map[string]string{"PLUGIN_DIR": "${GAUNTLET_TEST_HOME}/plugins"})
	assert.Contains(t, env, "PLUGIN_DIR=/opt/gauntlet/plugins")
}
