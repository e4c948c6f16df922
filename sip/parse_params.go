package sip

import (
	"strings"
	"unicode"
)

const (
	paramsStateKey = iota
	paramsStateEqual
	paramsStateValue
	paramsStateQuote
)

// UnmarshalHeaderParams reads seperator delimited key[=value] pairs into p
// until ending rune or end of string. Returns position where parsing stopped.
func UnmarshalHeaderParams(s string, seperator rune, ending rune, p *HeaderParams) (n int, err error) {
	var start, sep, quote int = 0, -1, -1
	state := paramsStateKey

	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	offset := len(s) - len(trimmed)
	s = trimmed
	n = len(s)
	for i, c := range s {
		if c == ending && state != paramsStateQuote {
			n = i
			break
		}

		switch state {
		case paramsStateKey:
			sep = -1
			start = i
			if c == seperator {
				// empty entry like ;;
				continue
			}
			state = paramsStateEqual

		case paramsStateEqual:
			if c == seperator {
				p.Add(strings.TrimSpace(s[start:i]), "")
				state = paramsStateKey
				continue
			}

			if c != '=' {
				continue
			}

			sep = i
			state = paramsStateValue

		case paramsStateValue:
			switch c {
			case '"':
				state = paramsStateQuote
				quote = i
			case seperator:
				p.Add(strings.TrimSpace(s[start:sep]), strings.TrimSpace(s[sep+1:i]))
				state = paramsStateKey
			}
		case paramsStateQuote:
			if c != '"' {
				continue
			}
			p.Add(strings.TrimSpace(s[start:sep]), s[quote+1:i])
			sep = -1
			start = len(s)
			state = paramsStateValue
			// Skip until next seperator
			rest := s[i+1:]
			next := strings.IndexRune(rest, seperator)
			end := strings.IndexRune(rest, ending)
			if end >= 0 && (next < 0 || end < next) {
				return offset + i + 1 + end, nil
			}
			if next < 0 {
				return offset + len(s), nil
			}
			return unmarshalQuotedTail(s, i+1+next, seperator, ending, p, offset)
		}
	}

	switch {
	case state == paramsStateValue && sep >= 0 && start < sep:
		p.Add(strings.TrimSpace(s[start:sep]), strings.TrimSpace(s[sep+1:n]))
	case state == paramsStateEqual && start < n:
		p.Add(strings.TrimSpace(s[start:n]), "")
	}

	return offset + n, nil
}

// unmarshalQuotedTail continues parsing after quoted value that ended at sepIdx.
func unmarshalQuotedTail(s string, sepIdx int, seperator rune, ending rune, p *HeaderParams, offset int) (int, error) {
	n, err := UnmarshalHeaderParams(s[sepIdx+1:], seperator, ending, p)
	return offset + sepIdx + 1 + n, err
}
