package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("Should yield empty options without directives", func(t *testing.T) {
		opts, err := Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, FieldOptions{}, opts)
		assert.False(t, opts.HasEach())
		assert.False(t, opts.HasDefault())
	})
	t.Run("Should read each and default from one tag", func(t *testing.T) {
		opts, err := Resolve([]string{`each=Arg, default=[]string{"a,b", "c"}`})
		require.NoError(t, err)
		assert.Equal(t, "Arg", opts.Each)
		assert.Equal(t, `[]string{"a,b", "c"}`, opts.Default)
	})
	t.Run("Should keep the default expression verbatim", func(t *testing.T) {
		opts, err := Resolve([]string{`default = time.Duration(3) * time.Second`})
		require.NoError(t, err)
		assert.Equal(t, "time.Duration(3) * time.Second", opts.Default)
	})
	t.Run("Should accept a quoted accumulator name", func(t *testing.T) {
		opts, err := Resolve([]string{`each = "EnvItem"`})
		require.NoError(t, err)
		assert.Equal(t, "EnvItem", opts.Each)
	})
	t.Run("Should merge markers and tag with later entries winning", func(t *testing.T) {
		opts, err := Resolve([]string{"each=Item", `default=map[string]int{"a": 1, "b": 2}`, "each=Entry"})
		require.NoError(t, err)
		assert.Equal(t, "Entry", opts.Each)
		assert.Equal(t, `map[string]int{"a": 1, "b": 2}`, opts.Default)
	})
	t.Run("Should ignore unknown keys", func(t *testing.T) {
		opts, err := Resolve([]string{"doc=ignored, each=Arg, future=(1, 2)"})
		require.NoError(t, err)
		assert.Equal(t, FieldOptions{Each: "Arg"}, opts)
	})
	t.Run("Should ignore unknown keys whatever their value", func(t *testing.T) {
		for _, raw := range []string{
			"omitempty, each=Arg",
			"future=, each=Arg",
			"each=Arg, note=[x",
			"note=f()), each=Arg",
			`each=Arg, note="x`,
		} {
			opts, err := Resolve([]string{raw})
			require.NoError(t, err, raw)
			assert.Equal(t, FieldOptions{Each: "Arg"}, opts, raw)
		}
	})
	t.Run("Should keep an equals sign inside the default", func(t *testing.T) {
		opts, err := Resolve([]string{`default=[]string{"RUST_LOG=info"}`})
		require.NoError(t, err)
		assert.Equal(t, `[]string{"RUST_LOG=info"}`, opts.Default)
	})
}

func TestResolveErrors(t *testing.T) {
	for name, raw := range map[string]string{
		"missing equals":      "each",
		"bare default":        "omitempty, default",
		"empty value":         "default=",
		"empty key":           "=Arg",
		"trailing comma":      "each=Arg,",
		"empty entry":         "each=Arg,, note=1",
		"non identifier each": "each=add-arg",
		"blank each":          "each=_",
		"unbalanced":          "default=[]int{1, 2",
		"stray closer":        "default=f()), each=Arg",
		"unterminated string": `default="abc`,
		"bad quoted each":     `each="Arg`,
	} {
		t.Run("Should reject "+name, func(t *testing.T) {
			_, err := Resolve([]string{raw})
			assert.ErrorIs(t, err, ErrMalformedDirective)
		})
	}
}

func TestSplit(t *testing.T) {
	t.Run("Should return nothing for blank text", func(t *testing.T) {
		assert.Empty(t, Split("   "))
	})
	t.Run("Should split only top level commas", func(t *testing.T) {
		entries := Split(`a=f(1, 2), b=[]rune{',', 'x'}, c="x,y"`)
		assert.Equal(t, []string{"a=f(1, 2)", `b=[]rune{',', 'x'}`, `c="x,y"`}, entries)
	})
	t.Run("Should keep splitting after a stray closer", func(t *testing.T) {
		assert.Equal(t, []string{"a=f())", "b=1"}, Split("a=f()), b=1"))
	})
}
