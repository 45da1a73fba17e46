package lexer

import "slices"

// Process-wide vocabularies. Built once, never mutated.
var (
	keywords = map[string]Keyword{
		"let":       DEFINE,
		"mut":       MUTABLE,
		"func":      FUNCTION,
		"if":        IF,
		"else":      ELSE,
		"while":     WHILE,
		"public":    PUBLICITY,
		"private":   PUBLICITY,
		"interface": PUBLICITY,
		"null":      NULL,
		"nullptr":   NULL,
		"return":    RETURN,
	}

	operators = map[string]Operator{
		"==": EQ,
		"!=": NE,
		"**": POWER,
		"->": RETURN_ARROW,
		"=":  ASSIGN,
		"+":  ADD,
		"-":  SUBTRACT,
		"*":  ASTERISK,
		"/":  DIVIDE,
	}

	punctuation = map[byte]Operator{
		'(': OPEN_PAREN,
		')': CLOSE_PAREN,
		'{': OPEN_BRACKET,
		'}': CLOSE_BRACKET,
		'[': OPEN_BRACE,
		']': CLOSE_BRACE,
		';': END_LINE,
	}

	// spellings sorted longest first, so the first prefix hit is the longest
	keywordSpellings  = longestFirst(keywords)
	operatorSpellings = longestFirst(operators)

	// every spelling a near-miss may be corrected to
	keywordVocabulary  = sortedKeys(keywords)
	operatorVocabulary = append(sortedKeys(operators), punctuationSpellings()...)
)

// Keywords returns every keyword spelling in lexicographic order
func Keywords() []string {
	return slices.Clone(keywordVocabulary)
}

// Operators returns every operator and punctuation spelling
func Operators() []string {
	return slices.Clone(operatorVocabulary)
}

// LookupKeyword reports the keyword spelled exactly as word
func LookupKeyword(word string) (Keyword, bool) {
	kw, ok := keywords[word]
	return kw, ok
}

// LookupOperator reports the operator spelled exactly as text
func LookupOperator(text string) (Operator, bool) {
	if op, ok := operators[text]; ok {
		return op, true
	}
	if len(text) == 1 {
		op, ok := punctuation[text[0]]
		return op, ok
	}
	return NO_OPERATOR, false
}

func longestFirst[V any](m map[string]V) []string {
	out := sortedKeys(m)
	slices.SortStableFunc(out, func(a, b string) int {
		return len(b) - len(a)
	})
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func punctuationSpellings() []string {
	out := make([]string, 0, len(punctuation))
	for b := range punctuation {
		out = append(out, string(b))
	}
	slices.Sort(out)
	return out
}
