package sarthi

import (
	"strings"
	"unicode"
)

// Detection is the outcome of classifying one message. Switched is set when
// the message's language differs from the language of the prior turns, so
// the composer can confirm the switch instead of silently following it.
type Detection struct {
	Language Language
	Switched bool
}

// LanguageClassifier routes a message into English, Hindi or Hinglish.
// Devanagari script wins outright; Hinglish is detected from a lexicon of
// romanized code-mixing markers; everything else is English. The lexicon is
// plain data so it can grow without touching the logic.
type LanguageClassifier struct {
	markers             map[string]struct{}
	strongPhrases       []string
	markerCountRequired int
}

func NewLanguageClassifier() *LanguageClassifier {
	markers := []string{
		"bhai", "yaar", "kya", "hai", "hain", "nahi", "nhi", "mujhe",
		"mera", "meri", "tera", "teri", "acha", "accha", "thik", "theek",
		"bohot", "bahut", "kyun", "kaise", "kaisa", "matlab", "dil",
		"zindagi", "dimag", "bilkul", "sach", "baat", "karna", "raha",
		"rahi", "gaya", "gayi", "hona", "hua", "abhi", "kal", "aaj",
		"kuch", "sab", "koi", "bata", "batao", "samajh", "pata",
	}
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[m] = struct{}{}
	}

	return &LanguageClassifier{
		markers: set,
		strongPhrases: []string{
			"kya kar", "kya hua", "mood off", "dimag kharab",
			"samajh nahi", "pata nahi", "kuch nahi", "theek nahi",
			"mann nahi", "dil nahi",
		},
		markerCountRequired: 2,
	}
}

// Classify never fails: any input, including the empty string, resolves to
// a language, defaulting to English.
func (c *LanguageClassifier) Classify(message string, history []string) Detection {
	current := c.classifyOne(message)

	switched := false
	if prev, ok := c.previousLanguage(history); ok && prev != current.Language {
		switched = true
	}
	current.Switched = switched
	return current
}

func (c *LanguageClassifier) classifyOne(message string) Detection {
	if containsDevanagari(message) {
		return Detection{Language: LanguageHindi}
	}

	lower := strings.ToLower(message)
	for _, phrase := range c.strongPhrases {
		if strings.Contains(lower, phrase) {
			return Detection{Language: LanguageHinglish}
		}
	}

	count := 0
	for _, token := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if _, ok := c.markers[token]; ok {
			count++
			if count >= c.markerCountRequired {
				return Detection{Language: LanguageHinglish}
			}
		}
	}

	return Detection{Language: LanguageEnglish}
}

// previousLanguage classifies the most recent non-empty prior turn.
func (c *LanguageClassifier) previousLanguage(history []string) (Language, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if strings.TrimSpace(history[i]) == "" {
			continue
		}
		return c.classifyOne(history[i]).Language, true
	}
	return LanguageEnglish, false
}

func containsDevanagari(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}
