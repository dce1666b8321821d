package search

import (
	"strconv"
	"strings"
)

// DefaultLimit caps list and full-text results
const DefaultLimit = 50

// minPhoneDigits is the shortest digit run treated as a phone number
const minPhoneDigits = 7

// Kind is the search path chosen for a query
type Kind int

const (
	KindAll Kind = iota
	KindPhone
	KindFullText
)

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindPhone:
		return "phone"
	case KindFullText:
		return "fulltext"
	default:
		return "unknown"
	}
}

// Query is a classified search request
type Query struct {
	Kind  Kind
	Text  string
	Phone int64
}

// Classify trims raw and picks the search path for it
func Classify(raw string) Query {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{Kind: KindAll}
	}

	if phone, ok := parsePhone(text); ok {
		return Query{Kind: KindPhone, Text: text, Phone: phone}
	}

	return Query{Kind: KindFullText, Text: text}
}

func parsePhone(text string) (int64, bool) {
	var digits strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ', r == '-', r == '(', r == ')':
		default:
			return 0, false
		}
	}

	if digits.Len() < minPhoneDigits {
		return 0, false
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
