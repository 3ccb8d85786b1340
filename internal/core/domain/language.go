package domain

// Language is the detected script language of a text span.
type Language string

// Detected languages.
const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageMixed   Language = "mixed"
)

// Valid reports whether l is one of the three known languages.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageHindi || l == LanguageMixed
}

// isDevanagari reports whether r falls in the Devanagari block
// (U+0900..U+097F).
func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

// isLatinLetter reports whether r is an ASCII Latin letter.
func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// DetectLanguage classifies text as English, Hindi, or mixed based on
// which scripts occur in it. Text with neither script (digits,
// punctuation, empty input) defaults to English. Pure and deterministic;
// there are no error conditions.
func DetectLanguage(text string) Language {
	var hasDevanagari, hasLatin bool
	for _, r := range text {
		switch {
		case isDevanagari(r):
			hasDevanagari = true
		case isLatinLetter(r):
			hasLatin = true
		}
		if hasDevanagari && hasLatin {
			return LanguageMixed
		}
	}

	switch {
	case hasDevanagari:
		return LanguageHindi
	case hasLatin:
		return LanguageEnglish
	default:
		return LanguageEnglish
	}
}

// LanguageStats holds the percentage share of each script class in a
// text span. Diagnostics only; the en/hi/mixed decision comes from
// DetectLanguage, not from these ratios.
type LanguageStats struct {
	English float64
	Hindi   float64
	Mixed   float64
}

// ComputeLanguageStats returns the character-count ratios of Latin and
// Devanagari characters over their combined total. All ratios are zero
// when the text contains no scripted characters.
func ComputeLanguageStats(text string) LanguageStats {
	var devanagari, latin int
	for _, r := range text {
		switch {
		case isDevanagari(r):
			devanagari++
		case isLatinLetter(r):
			latin++
		}
	}

	total := devanagari + latin
	if total == 0 {
		return LanguageStats{}
	}

	en := float64(latin) / float64(total) * 100
	hi := float64(devanagari) / float64(total) * 100
	return LanguageStats{
		English: en,
		Hindi:   hi,
		Mixed:   min(en, hi),
	}
}

// HasDevanagari reports whether text contains any Devanagari codepoint.
// Used by the chat path to pick the reply-language hint.
func HasDevanagari(text string) bool {
	for _, r := range text {
		if isDevanagari(r) {
			return true
		}
	}
	return false
}
