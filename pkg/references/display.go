package references

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DisplayLabel returns the text of the first preferred label in lang.
// When there is none, fallback is returned.
func DisplayLabel(labels []Label, lang, fallback string) string {
	for _, l := range labels {
		if l.LanguageID == lang && l.ValueTypeID == PrefLabel {
			if l.Value == "" {
				break
			}
			return l.Value
		}
	}
	return fallback
}

// DisplayValue joins the display labels of every reference with ", ".
func DisplayValue(v Value, lang, fallback string) string {
	if len(v) == 0 {
		return ""
	}
	names := make([]string, 0, len(v))
	for _, ref := range v {
		names = append(names, DisplayLabel(ref.Labels, lang, fallback))
	}
	return strings.Join(names, ", ")
}

// Rank weights
const (
	rankPref  = 10
	rankAlt   = 4
	rankOther = 1

	rankExactLanguage = 10
	rankBaseLanguage  = 5
)

// Rank scores a label for display in targetLang. Preferred labels outrank
// alternate labels, and an exact language match outranks a match on the
// base language only (en-US vs en).
func Rank(kind ValueType, sourceLang, targetLang string) int {
	rank := rankOther
	switch kind {
	case PrefLabel:
		rank = rankPref
	case AltLabel:
		rank = rankAlt
	}

	switch {
	case sourceLang == "" || targetLang == "":
	case strings.EqualFold(sourceLang, targetLang):
		rank *= rankExactLanguage
	case sameBase(sourceLang, targetLang):
		rank *= rankBaseLanguage
	}
	return rank
}

func sameBase(a, b string) bool {
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(strings.SplitN(a, "-", 2)[0], strings.SplitN(b, "-", 2)[0])
	}
	ba, _ := ta.Base()
	bb, _ := tb.Base()
	return ba == bb
}

// BestLabel returns the highest ranked label for lang. Ties keep the
// original order. ok is false when labels is empty.
func BestLabel(labels []Label, lang string) (best Label, ok bool) {
	if len(labels) == 0 {
		return Label{}, false
	}
	ranked := make([]Label, len(labels))
	copy(ranked, labels)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Rank(ranked[i].ValueTypeID, ranked[i].LanguageID, lang) >
			Rank(ranked[j].ValueTypeID, ranked[j].LanguageID, lang)
	})
	return ranked[0], true
}

// Representation is the compact form of a reference handed to clients.
type Representation struct {
	ListItemID   string `json:"list_item_id" yaml:"list_item_id"`
	DisplayValue string `json:"display_value" yaml:"display_value"`
}

// ToRepresentation converts a value using the best label for lang.
// A nil or empty value yields nil.
func ToRepresentation(v Value, lang string) []Representation {
	if len(v) == 0 {
		return nil
	}
	out := make([]Representation, 0, len(v))
	for _, ref := range v {
		rep := Representation{ListItemID: ref.ID()}
		if best, ok := BestLabel(ref.Labels, lang); ok {
			rep.DisplayValue = best.Value
		}
		out = append(out, rep)
	}
	return out
}
