package token

import "fmt"

const (
	paramSep     = ";"
	authParamSep = ", "
)

// inlineParams decodes parameters while next byte is parameter context.
// Each parameter is reported to owner element and appended to out as text.
func (s *decodeState) inlineParams(ctx Context, owner ElementID, out []byte, sep string) ([]byte, error) {
	for !s.c.AtEnd() {
		b, err := s.c.Peek()
		if err != nil {
			return out, err
		}

		switch b {
		case ctxParam:
			if err := s.c.Advance(1); err != nil {
				return out, err
			}
			out, err = s.param(ctx, owner, out, sep)
		case ctxParamList:
			if err := s.c.Advance(1); err != nil {
				return out, err
			}
			out, err = s.countedParams(ctx, owner, out, sep)
		default:
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// countedParams decodes count byte followed by name/value pairs.
func (s *decodeState) countedParams(ctx Context, owner ElementID, out []byte, sep string) ([]byte, error) {
	n, err := s.c.ReadByte()
	if err != nil {
		return out, err
	}
	for i := 0; i < int(n); i++ {
		out, err = s.param(ctx, owner, out, sep)
		if err != nil {
			return out, fmt.Errorf("param %d of %d: %w", i+1, n, err)
		}
	}
	return out, nil
}

func (s *decodeState) param(ctx Context, owner ElementID, out []byte, sep string) ([]byte, error) {
	name, err := s.token()
	if err != nil {
		return out, err
	}
	value, err := s.token()
	if err != nil {
		return out, err
	}
	s.l.ParameterFound(ctx, owner, name, value, true)
	return appendParam(out, sep, name, value), nil
}

// appendParam writes ;name=value. Empty value is flag only parameter.
func appendParam(out []byte, sep string, name, value []byte) []byte {
	out = append(out, sep...)
	out = append(out, name...)
	if len(value) > 0 {
		out = append(out, '=')
		out = append(out, value...)
	}
	return out
}

// appendQuoted writes v as quoted string.
func appendQuoted(out []byte, v []byte) []byte {
	out = append(out, '"')
	for _, c := range v {
		if c == '"' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return append(out, '"')
}
