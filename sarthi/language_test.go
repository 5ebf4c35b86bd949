package sarthi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLanguage(t *testing.T) {
	c := NewLanguageClassifier()

	tests := []struct {
		name    string
		message string
		want    Language
	}{
		{"plain english", "I had a really long day at the office today", LanguageEnglish},
		{"empty string defaults to english", "", LanguageEnglish},
		{"numbers only default to english", "12345", LanguageEnglish},
		{"devanagari is hindi", "मुझे बहुत तनाव है", LanguageHindi},
		{"devanagari wins over latin content", "I am feeling बहुत उदास today", LanguageHindi},
		{"single devanagari code point is hindi", "ok नहीं ok", LanguageHindi},
		{"two romanized markers make hinglish", "bhai aaj mood kharab hai", LanguageHinglish},
		{"strong phrase makes hinglish", "mood off ho gaya", LanguageHinglish},
		{"strong phrase kya hua", "kya hua tujhe", LanguageHinglish},
		{"one weak marker stays english", "that restaurant had great bhai food", LanguageEnglish},
		{"marker inside word does not count", "the chairman said hello", LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.message, nil)
			assert.Equal(t, tt.want, got.Language)
			assert.False(t, got.Switched)
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	c := NewLanguageClassifier()

	inputs := []string{
		"", " ", "\n", "😀😀😀", "!!!???", "हिंदी english hinglish",
		"a", "यार", "yaar yaar yaar", string([]byte{0xff, 0xfe}),
	}
	for _, in := range inputs {
		got := c.Classify(in, nil)
		assert.Contains(t, []Language{LanguageEnglish, LanguageHindi, LanguageHinglish}, got.Language)
	}
}

func TestClassifySwitchDetection(t *testing.T) {
	c := NewLanguageClassifier()

	t.Run("switch from english to hindi", func(t *testing.T) {
		got := c.Classify("मुझे बहुत तनाव है", []string{"hello, how are you", "work was fine"})
		assert.Equal(t, LanguageHindi, got.Language)
		assert.True(t, got.Switched)
	})

	t.Run("no switch when language stays the same", func(t *testing.T) {
		got := c.Classify("another english message", []string{"first english message"})
		assert.Equal(t, LanguageEnglish, got.Language)
		assert.False(t, got.Switched)
	})

	t.Run("no history means no switch", func(t *testing.T) {
		got := c.Classify("मुझे तनाव है", nil)
		assert.True(t, got.Language == LanguageHindi)
		assert.False(t, got.Switched)
	})

	t.Run("blank history entries are skipped", func(t *testing.T) {
		got := c.Classify("bhai kya scene hai", []string{"plain english here", "", "  "})
		assert.Equal(t, LanguageHinglish, got.Language)
		assert.True(t, got.Switched)
	})
}

func TestLanguageTags(t *testing.T) {
	assert.Equal(t, "en", LanguageEnglish.Tag().String())
	assert.Equal(t, "hi", LanguageHindi.Tag().String())
	assert.Equal(t, "hi-Latn", LanguageHinglish.Tag().String())
}
