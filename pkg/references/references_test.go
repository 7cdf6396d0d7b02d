package references

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/refselect/pkg/errors"
)

func label(item, lang string, kind ValueType, text string) Label {
	return Label{ID: item + "-" + lang + "-" + kind, Value: text, LanguageID: lang, ValueTypeID: kind, ListItemID: item}
}

func ref(item, text string) Reference {
	return Reference{
		URI:    "http://example.com/" + item,
		ListID: "list-1",
		Labels: []Label{
			label(item, "en", PrefLabel, text),
			label(item, "de", PrefLabel, text+" (de)"),
			label(item, "en", AltLabel, text+" alt"),
		},
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		lang   string
		want   string
	}{
		{name: "preferred label in language", labels: ref("a", "Alpha").Labels, lang: "en", want: "Alpha"},
		{name: "other language", labels: ref("a", "Alpha").Labels, lang: "de", want: "Alpha (de)"},
		{name: "no label in language", labels: ref("a", "Alpha").Labels, lang: "fr", want: "Unlabeled"},
		{name: "alt label only", labels: []Label{label("a", "en", AltLabel, "Alt")}, lang: "en", want: "Unlabeled"},
		{name: "empty text", labels: []Label{label("a", "en", PrefLabel, "")}, lang: "en", want: "Unlabeled"},
		{name: "no labels", labels: nil, lang: "en", want: "Unlabeled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayLabel(tt.labels, tt.lang, "Unlabeled"))
		})
	}
}

func TestDisplayValue(t *testing.T) {
	v := Value{ref("a", "Alpha"), ref("b", "Beta"), ref("c", "Gamma")}
	assert.Equal(t, "Alpha, Beta, Gamma", DisplayValue(v, "en", "?"))
	assert.Equal(t, "", DisplayValue(nil, "en", "?"))
}

func TestValueIDs(t *testing.T) {
	v := Value{ref("a", "Alpha"), {URI: "x"}, ref("b", "Beta")}
	assert.Equal(t, []SelectionID{"a", "", "b"}, v.IDs())
	assert.Nil(t, Value(nil).IDs())
}

func TestValueClone(t *testing.T) {
	v := Value{ref("a", "Alpha")}
	c := v.Clone()
	c[0].Labels[0].Value = "changed"
	assert.Equal(t, "Alpha", v[0].Labels[0].Value)
	assert.Nil(t, Value(nil).Clone())
}

func TestRank(t *testing.T) {
	assert.Equal(t, 100, Rank(PrefLabel, "en", "en"))
	assert.Equal(t, 50, Rank(PrefLabel, "en-US", "en"))
	assert.Equal(t, 10, Rank(PrefLabel, "de", "en"))
	assert.Equal(t, 40, Rank(AltLabel, "EN", "en"))
	assert.Equal(t, 1, Rank(Note, "", "en"))
}

func TestBestLabel(t *testing.T) {
	labels := []Label{
		label("a", "de", PrefLabel, "Haus"),
		label("a", "en", AltLabel, "Home"),
		label("a", "en-GB", PrefLabel, "House"),
	}

	best, ok := BestLabel(labels, "en")
	require.True(t, ok)
	assert.Equal(t, "House", best.Value)

	best, ok = BestLabel(labels, "de")
	require.True(t, ok)
	assert.Equal(t, "Haus", best.Value)

	_, ok = BestLabel(nil, "en")
	assert.False(t, ok)
}

func TestToRepresentation(t *testing.T) {
	reps := ToRepresentation(Value{ref("a", "Alpha")}, "en")
	assert.Equal(t, []Representation{{ListItemID: "a", DisplayValue: "Alpha"}}, reps)
	assert.Nil(t, ToRepresentation(Value{}, "en"))
}

func TestOptionPrepare(t *testing.T) {
	opt := Option{
		ListID: "list-1",
		URI:    "http://example.com/x2",
		Guide:  true,
		Values: []Label{
			label("x2", "en", PrefLabel, "Term Two"),
			label("x2", "en", ScopeNote, "a note"),
			label("x2", "en", AltLabel, "Second"),
		},
	}
	opt.Prepare()

	assert.True(t, opt.Disabled)
	require.Len(t, opt.Labels, 2)
	assert.Equal(t, "Term Two", opt.Labels[0].Value)
	assert.Equal(t, "x2", opt.SelectionID())

	r := opt.Reference()
	assert.Equal(t, "http://example.com/x2", r.URI)
	assert.Equal(t, "x2", r.ID())
}

func TestOptionReferenceCarriesSelectionID(t *testing.T) {
	opt := Option{
		ListItemID: "x2",
		URI:        "http://example.com/x2",
		Values:     []Label{label("", "en", PrefLabel, "Term Two")},
	}
	opt.Prepare()

	r := opt.Reference()
	assert.Equal(t, opt.SelectionID(), r.ID())
	assert.Equal(t, "x2", r.ID())
	assert.Empty(t, opt.Labels[0].ListItemID, "option labels are left untouched")
}

func TestOptionSelectionIDFallbacks(t *testing.T) {
	assert.Equal(t, "item", Option{ListItemID: "item", ID: "id"}.SelectionID())
	assert.Equal(t, "id", Option{ID: "id"}.SelectionID())
}

func TestParseValue(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := ParseValue([]byte(`[{"uri":"http://x","list_id":"L","labels":[
			{"id":"1","value":"Alpha","language_id":"en","valuetype_id":"prefLabel","list_item_id":"a"}]}]`))
		require.NoError(t, err)
		require.Len(t, v, 1)
		assert.Equal(t, "a", v[0].ID())
		assert.Equal(t, "Alpha", v[0].Labels[0].Value)
	})

	for _, empty := range []string{"", "null", "[]", "  "} {
		t.Run("empty "+empty, func(t *testing.T) {
			v, err := ParseValue([]byte(empty))
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}

	t.Run("unexpected key", func(t *testing.T) {
		_, err := ParseValue([]byte(`[{"uri":"x","list_id":"L","labels":[],"bogus":1}]`))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "Unexpected value: 'bogus'")
	})

	t.Run("empty labels counts as missing", func(t *testing.T) {
		_, err := ParseValue([]byte(`[{"uri":"x","list_id":"L","labels":[]}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing required value(s): 'labels'")
	})

	t.Run("label missing fields", func(t *testing.T) {
		_, err := ParseValue([]byte(`[{"uri":"x","list_id":"L","labels":[{"value":"A"}]}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'id'")
		assert.Contains(t, err.Error(), "[0]")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseValue([]byte(`{"uri":`))
		require.Error(t, err)
		assert.False(t, errors.IsValidationError(err))
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid single", func(t *testing.T) {
		assert.NoError(t, Validate(Value{ref("a", "Alpha")}, false))
	})

	t.Run("duplicate pref label language", func(t *testing.T) {
		r := ref("a", "Alpha")
		r.Labels = append(r.Labels, label("a", "en", PrefLabel, "Other"))
		err := Validate(Value{r}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only one prefLabel per language")
	})

	t.Run("mixed list items", func(t *testing.T) {
		r := ref("a", "Alpha")
		r.Labels = append(r.Labels, label("b", "fr", PrefLabel, "Bêta"))
		err := Validate(Value{r}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple list items")
	})

	t.Run("multi value not allowed", func(t *testing.T) {
		err := Validate(Value{ref("a", "Alpha"), ref("b", "Beta")}, false)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.NoError(t, Validate(Value{ref("a", "Alpha"), ref("b", "Beta")}, true))
	})

	t.Run("nil value", func(t *testing.T) {
		assert.NoError(t, Validate(nil, false))
	})
}
