package inspect

import (
	"go/parser"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		expr  string
		shape Shape
		inner string
	}{
		{"string", Plain, "string"},
		{"*string", Plain, "*string"},
		{"map[string]int", Plain, "map[string]int"},
		{"[4]byte", Plain, "[4]byte"},
		{"time.Duration", Plain, "time.Duration"},
		{"Pair[int, string]", Plain, "Pair[int, string]"},
		{"[]string", Sequence, "string"},
		{"[][]byte", Sequence, "[]byte"},
		{"[]*url.URL", Sequence, "*url.URL"},
		{"([]string)", Sequence, "string"},
		{"Seq[int]", Sequence, "int"},
		{"coll.Seq[map[string]int]", Sequence, "map[string]int"},
		{"Option[string]", Optional, "string"},
		{"builder.Option[[]string]", Optional, "[]string"},
		{"builder.Option[*time.Time]", Optional, "*time.Time"},
	}
	in := New(Wrappers{})
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			expr, err := parser.ParseExpr(tc.expr)
			require.NoError(t, err)
			got, err := in.Classify(expr)
			require.NoError(t, err)
			assert.Equal(t, tc.shape, got.Shape)
			assert.Equal(t, tc.inner, got.Inner)
		})
	}
}

func TestClassifyArity(t *testing.T) {
	in := New(Wrappers{})
	for _, src := range []string{"Option", "builder.Option", "Option[int, string]", "Seq", "x.Seq[a, b, c]"} {
		t.Run("Should reject "+src, func(t *testing.T) {
			expr, err := parser.ParseExpr(src)
			require.NoError(t, err)
			_, err = in.Classify(expr)
			require.ErrorIs(t, err, ErrWrapperArity)
			var arity *WrapperArityError
			require.ErrorAs(t, err, &arity)
			assert.Equal(t, src, arity.Type)
		})
	}
}

func TestClassifyCustomWrappers(t *testing.T) {
	in := New(Wrappers{Optional: "Maybe", Sequence: "List"})
	t.Run("Should use the configured names", func(t *testing.T) {
		for src, shape := range map[string]Shape{
			"Maybe[int]":      Optional,
			"List[int]":       Sequence,
			"Option[int]":     Plain,
			"Seq[int]":        Plain,
			"[]int":           Sequence,
			"lo.Maybe[error]": Optional,
		} {
			expr, err := parser.ParseExpr(src)
			require.NoError(t, err)
			got, err := in.Classify(expr)
			require.NoError(t, err, src)
			assert.Equal(t, shape, got.Shape, src)
		}
	})
	t.Run("Should treat a bare configured name as an arity error", func(t *testing.T) {
		expr, err := parser.ParseExpr("Maybe")
		require.NoError(t, err)
		_, err = in.Classify(expr)
		assert.ErrorIs(t, err, ErrWrapperArity)
	})
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "optional", Optional.String())
	assert.Equal(t, "sequence", Sequence.String())
	assert.Equal(t, "Shape(9)", Shape(9).String())
}
