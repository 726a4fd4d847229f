package catalog

import (
	"github.com/go-playground/validator/v10"

	"github.com/ivlev/sagascape/internal/apperr"
)

// DictionaryEntry is one headword with its definitions.
type DictionaryEntry struct {
	Word        string   `yaml:"word" validate:"required"`
	Definitions []string `yaml:"definitions" validate:"required,min=1"`
	Language    string   `yaml:"language,omitempty"`
	Phonetic    string   `yaml:"phonetic,omitempty"`
}

// Languages of the dictionaries used by the scenes.
const (
	OldNorse        = "Old Norse"
	OldIcelandic    = "Old Icelandic"
	MedievalSwedish = "Medieval Swedish"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IsDictionaryEntry reports whether v has the shape of a dictionary entry.
func IsDictionaryEntry(v any) bool {
	return AssertDictionaryEntry(v) == nil
}

// AssertDictionaryEntry returns a VALIDATION_FAILURE error unless v has a
// string word and a non-empty list of string definitions. v may be a
// DictionaryEntry, a pointer to one or a decoded map.
func AssertDictionaryEntry(v any) error {
	var e DictionaryEntry
	switch x := v.(type) {
	case DictionaryEntry:
		e = x
	case *DictionaryEntry:
		if x == nil {
			return apperr.New(apperr.CodeValidationFailure, "object is not a valid dictionary entry: nil")
		}
		e = *x
	case map[string]any:
		var err error
		if e, err = entryFromMap(x); err != nil {
			return err
		}
	default:
		return apperr.New(apperr.CodeValidationFailure, "object is not a valid dictionary entry: %T", v)
	}
	if err := validate.Struct(e); err != nil {
		return apperr.Wrap(apperr.CodeValidationFailure, err, "object is not a valid dictionary entry")
	}
	return nil
}

func entryFromMap(m map[string]any) (DictionaryEntry, error) {
	var e DictionaryEntry
	word, ok := m["word"].(string)
	if !ok {
		return e, apperr.New(apperr.CodeValidationFailure, "object is not a valid dictionary entry: word is %T", m["word"])
	}
	e.Word = word
	switch defs := m["definitions"].(type) {
	case []string:
		e.Definitions = defs
	case []any:
		for i, d := range defs {
			s, ok := d.(string)
			if !ok {
				return e, apperr.New(apperr.CodeValidationFailure, "object is not a valid dictionary entry: definition %d is %T", i, d)
			}
			e.Definitions = append(e.Definitions, s)
		}
	default:
		return e, apperr.New(apperr.CodeValidationFailure, "object is not a valid dictionary entry: definitions is %T", m["definitions"])
	}
	e.Language, _ = m["language"].(string)
	e.Phonetic, _ = m["phonetic"].(string)
	return e, nil
}
