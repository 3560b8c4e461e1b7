package vmap

import (
	"fmt"
	"os"
)

// Options carries parser knobs. The zero value is ready to use.
type Options struct {
	// Logf receives non-fatal diagnostics: duplicate symbols inside a
	// release and parent references that name no release in the map. Nil
	// discards them.
	Logf func(format string, args ...any)
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// ParseError describes a syntax error in a version map, located by line and
// column (both 1-based).
type ParseError struct {
	Path string // map path, "" when parsing from memory
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}

// ParseFile reads and parses the version map at path.
func ParseFile(path string, opts Options) (*Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read version map: %w", err)
	}
	return Parse(path, src, opts)
}

// Parse parses version map source into a release graph. path is used only
// to locate errors.
//
// The format is a sequence of release blocks:
//
//	LIBFOO_1_0_0 {
//	    foo_init;
//	    foo_free;
//	};
//
//	LIBFOO_1_1_0 unreleased {
//	    foo_reset;
//	} LIBFOO_1_0_0;
//
// Identifiers are runs of letters, digits and underscores. "#" starts a
// comment running to end of line. A block without the unreleased keyword is
// frozen. At most one block may be unreleased, release names must be
// unique, and duplicate symbols inside a block collapse to one with a
// diagnostic. Parent references are kept verbatim even when they name no
// block in the map; that earns a diagnostic, not an error.
func Parse(path string, src []byte, opts Options) (*Graph, error) {
	p := &parser{path: path, src: src, line: 1, col: 1, opts: opts}
	g := NewGraph()
	for {
		p.skip()
		if p.eof() {
			break
		}
		if err := p.release(g); err != nil {
			return nil, err
		}
	}
	for _, r := range g.Releases() {
		if r.Parent == "" {
			continue
		}
		if _, ok := g.Release(r.Parent); !ok {
			opts.logf("release '%s' names unknown parent '%s'", r.Name, r.Parent)
		}
	}
	return g, nil
}

// openKeyword marks a block whose symbol set may still change.
const openKeyword = "unreleased"

type parser struct {
	path string
	src  []byte
	off  int
	line int
	col  int
	opts Options
}

// release parses one block and adds it to g.
func (p *parser) release(g *Graph) error {
	name, ok := p.ident()
	if !ok {
		return p.errorf("expected release name")
	}
	if _, exists := g.Release(name); exists {
		return p.errorf("duplicate release '%s'", name)
	}

	r := NewRelease(name)
	r.Released = true
	p.skip()
	if !p.accept('{') {
		kw, ok := p.ident()
		if !ok || kw != openKeyword {
			return p.errorf("expected '{' or '%s' after release name '%s'", openKeyword, name)
		}
		if g.Open() != nil {
			return p.errorf("release '%s' cannot be %s: '%s' already is", name, openKeyword, g.Open().Name)
		}
		r.Released = false
		p.skip()
		if !p.accept('{') {
			return p.errorf("expected '{' after '%s'", openKeyword)
		}
	}

	for {
		p.skip()
		if p.accept('}') {
			break
		}
		sym, ok := p.ident()
		if !ok {
			return p.errorf("expected symbol name or '}' in release '%s'", name)
		}
		p.skip()
		if !p.accept(';') {
			return p.errorf("expected ';' after symbol '%s'", sym)
		}
		if !r.AddSymbol(sym) {
			p.opts.logf("duplicate symbol '%s' in release '%s'", sym, name)
		}
	}

	p.skip()
	if !p.accept(';') {
		parent, ok := p.ident()
		if !ok {
			return p.errorf("expected parent release name or ';' after '}'")
		}
		r.Parent = parent
		p.skip()
		if !p.accept(';') {
			return p.errorf("expected ';' after parent reference '%s'", parent)
		}
	}

	return g.Add(r)
}

// skip advances over whitespace and comments.
func (p *parser) skip() {
	for !p.eof() {
		switch c := p.src[p.off]; {
		case c == '#':
			for !p.eof() && p.src[p.off] != '\n' {
				p.advance()
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.advance()
		default:
			return
		}
	}
}

// ident consumes a run of word characters.
func (p *parser) ident() (string, bool) {
	start := p.off
	for !p.eof() && isWordByte(p.src[p.off]) {
		p.advance()
	}
	if p.off == start {
		return "", false
	}
	return string(p.src[start:p.off]), true
}

// accept consumes c if it is the next byte.
func (p *parser) accept(c byte) bool {
	if p.eof() || p.src[p.off] != c {
		return false
	}
	p.advance()
	return true
}

func (p *parser) advance() {
	if p.src[p.off] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.off++
}

func (p *parser) eof() bool { return p.off >= len(p.src) }

// errorf builds a ParseError at the current position.
func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Path: p.path,
		Line: p.line,
		Col:  p.col,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
