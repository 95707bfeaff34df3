package giv

// Token is one whitespace-delimited word of a line.
type Token struct {
	Text string
	Pos  int // byte offset of Text within the line
}

func isSpace(c byte) bool { return c == ' ' || c == '\r' }

// Split breaks line into maximal runs of non-whitespace, where whitespace is
// a space or a carriage return. line[tok.Pos:] recovers the verbatim rest of
// the line starting at tok, which is how attribute values keep their spacing.
func Split(line string) []Token {
	var toks []Token
	i := 0
	for i < len(line) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i == len(line) {
			break
		}
		start := i
		for i < len(line) && !isSpace(line[i]) {
			i++
		}
		toks = append(toks, Token{Text: line[start:i], Pos: start})
	}
	return toks
}
