package lexer

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/v2/trees/redblacktree"
)

// DefaultMaxDistance is the largest edit distance a suggestion may have.
const DefaultMaxDistance = 2

// Candidate is a vocabulary entry near some offending text.
type Candidate struct {
	Word     string
	Distance int
}

// Distance is the Levenshtein distance between a and b over runes (insert,
// delete, substitute, unit cost). Once the distance is known to exceed limit it
// stops and returns limit+1. A negative limit means unbounded.
func Distance(a, b string, limit int) int {
	ra, rb := []rune(a), []rune(b)
	if limit >= 0 && abs(len(ra)-len(rb)) > limit {
		return limit + 1
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if limit >= 0 && rowMin > limit {
			return limit + 1
		}
		prev, curr = curr, prev
	}

	d := prev[len(rb)]
	if limit >= 0 && d > limit {
		return limit + 1
	}
	return d
}

// Threshold is the largest distance accepted for written:
// min(maxDistance, half its rune length).
func Threshold(written string, maxDistance int) int {
	return min(maxDistance, utf8.RuneCountInString(written)/2)
}

// Suggest ranks the vocabulary entries within Threshold of written,
// nearest first and lexicographically within a distance.
func Suggest(written string, vocabulary []string, maxDistance int) []Candidate {
	limit := Threshold(written, maxDistance)
	if limit <= 0 {
		return nil
	}

	byDistance := redblacktree.New[int, []string]()
	for _, word := range vocabulary {
		d := Distance(written, word, limit)
		if d == 0 || d > limit {
			continue
		}
		group, _ := byDistance.Get(d)
		byDistance.Put(d, append(group, word))
	}

	var ranked []Candidate
	it := byDistance.Iterator()
	for it.Next() {
		words := it.Value()
		slices.Sort(words)
		for _, word := range words {
			ranked = append(ranked, Candidate{Word: word, Distance: it.Key()})
		}
	}
	return ranked
}

// NewMistake builds a report from ranked candidates, nil if there are none.
func NewMistake(written string, ranked []Candidate) *Mistake {
	if len(ranked) == 0 {
		return nil
	}
	m := &Mistake{
		Written:   written,
		Potential: ranked[0].Word,
		Distance:  ranked[0].Distance,
	}
	for _, c := range ranked[1:] {
		m.OtherPotentials = append(m.OtherPotentials, c.Word)
	}
	return m
}

// diagnose classifies text the Scanner could not accept. Without a close
// enough candidate the text is UNKNOWN_LEXEME and the Mistake is nil.
func diagnose(written string, maxDistance int) (ErrorKind, *Mistake) {
	kw := Suggest(written, keywordVocabulary, maxDistance)
	op := Suggest(written, operatorVocabulary, maxDistance)

	switch {
	case len(kw) == 0 && len(op) == 0:
		return UNKNOWN_LEXEME, nil
	case len(op) == 0:
		return INVALID_KEYWORD, NewMistake(written, kw)
	case len(kw) == 0:
		return INVALID_OPERATOR, NewMistake(written, op)
	case kw[0].Distance < op[0].Distance:
		return INVALID_KEYWORD, NewMistake(written, kw)
	case op[0].Distance < kw[0].Distance:
		return INVALID_OPERATOR, NewMistake(written, op)
	}

	first, _ := utf8.DecodeRuneInString(written)
	if unicode.IsLetter(first) {
		return INVALID_KEYWORD, NewMistake(written, kw)
	}
	return INVALID_OPERATOR, NewMistake(written, op)
}

// misspelledKeyword checks an identifier sitting where only a keyword fits.
func misspelledKeyword(word string, maxDistance int) *Mistake {
	return NewMistake(word, Suggest(word, keywordVocabulary, maxDistance))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
