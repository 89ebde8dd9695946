package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites job source before passing it to zygomys:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols that could clash with user variables.
//  2. Kebab-case identifiers become snake case (lead-in -> lead_in), since
//     zygomys reads a hyphen as subtraction.
//  3. ; and ;; line comments become //.
//
// String literals, double-quoted or backticked, are copied untouched.
func preprocessSource(source string) string {
	s := &scanner{src: []byte(source), out: make([]byte, 0, len(source)+len(source)/4)}
	for s.i < len(s.src) {
		c := s.src[s.i]
		switch {
		case c == '"':
			s.quoted('"', true)
		case c == '`':
			s.quoted('`', false)
		case c == ';':
			s.comment()
		case c == ':' && s.peek() == '=':
			s.copy(2)
		case c == ':' && isLetter(s.peek()):
			s.keyword()
		case c == '-' && s.i > 0 && isIdentChar(s.src[s.i-1]) && isLetter(s.peek()):
			s.out = append(s.out, '_')
			s.i++
		default:
			s.copy(1)
		}
	}
	return string(s.out)
}

type scanner struct {
	src []byte
	out []byte
	i   int
}

func (s *scanner) peek() byte {
	if s.i+1 < len(s.src) {
		return s.src[s.i+1]
	}
	return 0
}

func (s *scanner) copy(n int) {
	n = min(n, len(s.src)-s.i)
	s.out = append(s.out, s.src[s.i:s.i+n]...)
	s.i += n
}

// quoted copies a literal through its closing quote.
func (s *scanner) quoted(q byte, escapes bool) {
	s.copy(1)
	for s.i < len(s.src) && s.src[s.i] != q {
		if escapes && s.src[s.i] == '\\' {
			s.copy(2)
			continue
		}
		s.copy(1)
	}
	s.copy(1)
}

func (s *scanner) comment() {
	for s.i < len(s.src) && s.src[s.i] == ';' {
		s.i++
	}
	s.out = append(s.out, '/', '/')
	for s.i < len(s.src) && s.src[s.i] != '\n' {
		s.copy(1)
	}
}

func (s *scanner) keyword() {
	j := s.i + 1
	for j < len(s.src) && isKWChar(s.src[j]) {
		j++
	}
	s.out = append(s.out, '"')
	s.out = append(s.out, kwPrefix...)
	s.out = append(s.out, s.src[s.i+1:j]...)
	s.out = append(s.out, '"')
	s.i = j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
