package sarthi

import (
	"strings"
	"unicode"
)

// ResponseCritic runs cheap post-generation checks on a candidate reply.
// It only renders verdicts; the retry policy (exactly one corrective
// regeneration) belongs to the engine.
type ResponseCritic struct {
	boilerplate []string
}

func NewResponseCritic() *ResponseCritic {
	return &ResponseCritic{
		boilerplate: []string{
			"as an ai",
			"as a language model",
			"i am an ai",
			"i'm an ai",
			"i cannot",
			"i can't assist",
			"i apologize",
			"i'm sorry, but i",
			"i am not able to",
			"my programming",
			"i don't have feelings",
		},
	}
}

func (c *ResponseCritic) Evaluate(candidate string, target Language) Verdict {
	return Verdict{
		IsGeneric:       c.isGeneric(candidate),
		IsWrongLanguage: c.isWrongLanguage(candidate, target),
	}
}

func (c *ResponseCritic) isGeneric(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, pattern := range c.boilerplate {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// isWrongLanguage is script-based: Hindi replies must carry Devanagari,
// English replies must carry none, and Hinglish must be predominantly Latin
// script. A Hinglish reply with no Latin letters at all is flagged; that
// also catches numeric or emoji-only replies, which is accepted for now.
func (c *ResponseCritic) isWrongLanguage(candidate string, target Language) bool {
	hasDevanagari := containsDevanagari(candidate)
	hasLatin := containsLatin(candidate)

	switch target {
	case LanguageHindi:
		return hasLatin && !hasDevanagari
	case LanguageEnglish:
		return hasDevanagari
	case LanguageHinglish:
		return !hasLatin
	default:
		return false
	}
}

// BuildCorrection returns the instruction appended to the original prompt
// for the single corrective regeneration, phrased in the target language.
func (c *ResponseCritic) BuildCorrection(target Language) string {
	switch target {
	case LanguageHindi:
		return "पिछला जवाब ठीक नहीं था। असली दोस्त की तरह, देवनागरी में हिंदी में ही जवाब दो। AI या माफ़ी जैसी बातें बिल्कुल मत लिखो।"
	case LanguageHinglish:
		return "Pichla jawab theek nahi tha. Ek real dost ki tarah Hinglish mein (Latin script) hi jawab do. AI waali ya formal baatein bilkul mat likho."
	default:
		return "That reply missed the mark. Answer again as a real friend would, in natural English. Do not apologize, do not mention being an AI, and do not use canned assistant phrasing."
	}
}

func containsLatin(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
