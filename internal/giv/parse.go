package giv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	tstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Option configures parsing.
type Option func(*parseOptions)

type parseOptions struct {
	strict  bool
	logger  *slog.Logger
	skipped *[]*LineError
}

// WithStrict makes the first malformed or short line fail the whole parse
// instead of being skipped.
func WithStrict(strict bool) Option {
	return func(o *parseOptions) { o.strict = strict }
}

// WithLogger sets the logger that reports skipped lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *parseOptions) { o.logger = l }
}

// WithSkipped collects every skipped line into *dst.
func WithSkipped(dst *[]*LineError) Option {
	return func(o *parseOptions) { o.skipped = dst }
}

// parser is the per-parse accumulator. Attributes are sticky: they survive
// dataset boundaries and are only ever overwritten.
type parser struct {
	opts    parseOptions
	out     *Giv
	points  []PathPoint
	attribs Attribs
	lineNo  int
}

func newParser(out *Giv, opts []Option) *parser {
	p := &parser{out: out, attribs: Attribs{}}
	for _, o := range opts {
		o(&p.opts)
	}
	if p.opts.logger == nil {
		p.opts.logger = slog.Default()
	}
	return p
}

// flush turns the pending points into a dataset with a snapshot of the
// current attributes.
func (p *parser) flush() {
	if len(p.points) == 0 {
		return
	}
	p.out.Append(&DataSet{points: p.points, attribs: p.attribs.Clone()})
	p.points = nil
}

func (p *parser) line(line string) error {
	p.lineNo++
	toks := Split(line)
	if len(toks) == 0 {
		p.flush()
		return nil
	}
	first := toks[0].Text
	if first[0] == '$' {
		val := ""
		if len(toks) > 1 {
			val = line[toks[1].Pos:]
		}
		p.attribs[first[1:]] = val
		return nil
	}

	var (
		pt  PathPoint
		err error
	)
	switch c := lower(first[0]); {
	case c == 'm':
		pt, err = coordPoint(MoveTo, toks, 1)
	case c == 'l':
		pt, err = coordPoint(LineTo, toks, 1)
	case c == 'z':
		pt = Close()
	case isNumStart(c):
		pt, err = coordPoint(LineTo, toks, 0)
	default:
		return nil
	}
	if err != nil {
		return p.skip(line, err)
	}
	p.points = append(p.points, pt)
	return nil
}

func (p *parser) skip(line string, err error) error {
	le := &LineError{Line: p.lineNo, Text: line, Err: err}
	if p.opts.strict {
		return le
	}
	p.opts.logger.Warn("giv: skipping line", "line", le.Line, "reason", err.Error(), "text", line)
	if p.opts.skipped != nil {
		*p.opts.skipped = append(*p.opts.skipped, le)
	}
	return nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func isNumStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '.'
}

// coordPoint reads x and y from toks[at] and toks[at+1].
func coordPoint(op Op, toks []Token, at int) (PathPoint, error) {
	if len(toks) < at+2 {
		return PathPoint{}, ErrShortLine
	}
	x, err := parseNumber(toks[at].Text)
	if err != nil {
		return PathPoint{}, err
	}
	y, err := parseNumber(toks[at+1].Text)
	if err != nil {
		return PathPoint{}, err
	}
	return PathPoint{Op: op, Point: Point{x, y}}, nil
}

// parseNumber accepts a token only when the whole of it is a finite decimal
// number. The extent of the number comes from the tdewolff scanner, the value
// from the correctly rounded stdlib conversion.
func parseNumber(s string) (float64, error) {
	_, n := tstrconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) || !strings.ContainsAny(s, "0123456789") {
		return 0, ErrMalformedNumber
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrMalformedNumber
	}
	return f, nil
}

// run reads r line by line. Lines have no length limit.
func (p *parser) run(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		s, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("giv: reading line %d: %w", p.lineNo+1, err)
		}
		if s != "" {
			s = strings.TrimSuffix(s, "\n")
			s = strings.TrimSuffix(s, "\r")
			if lerr := p.line(s); lerr != nil {
				return lerr
			}
		}
		if err != nil {
			break
		}
	}
	p.flush()
	return nil
}

// Parse reads giv text from r. Malformed lines are skipped unless
// WithStrict is given; any error returns no Giv at all.
func Parse(r io.Reader, opts ...Option) (*Giv, error) {
	g := New()
	if err := newParser(g, opts).run(r); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseString parses giv text held in a string.
func ParseString(s string, opts ...Option) (*Giv, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Load parses the giv file at path.
func Load(path string, opts ...Option) (*Giv, error) {
	g := New()
	if err := g.ParseFile(path, opts...); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseFile replaces the contents of g with the datasets of the file at
// path. On error g is left empty.
func (g *Giv) ParseFile(path string, opts ...Option) error {
	g.Clear()
	f, err := os.Open(path)
	if err != nil {
		return &OpenError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()
	if err := newParser(g, opts).run(f); err != nil {
		g.Clear()
		return err
	}
	return nil
}

// ReadFrom replaces the contents of g with the datasets read from r.
func (g *Giv) ReadFrom(r io.Reader) (int64, error) {
	g.Clear()
	cr := &countingReader{r: r}
	if err := newParser(g, nil).run(cr); err != nil {
		g.Clear()
		return cr.n, err
	}
	return cr.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += int64(n)
	return n, err
}
