package vue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned for templates the scanner cannot delimit.
var ErrSyntax = errors.New("template syntax error")

// SyntaxError locates an unterminated construct.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Message)
}

// Is makes errors.Is(err, ErrSyntax) succeed.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

//nolint:gochecknoglobals // lookup tables
var (
	voidElements = map[string]bool{
		"area": true, "base": true, "br": true, "col": true, "embed": true,
		"hr": true, "img": true, "input": true, "link": true, "meta": true,
		"source": true, "track": true, "wbr": true,
	}
	rawTextElements = map[string]bool{
		"script": true, "style": true,
	}
)

// scanner performs a single pass over a template, building the node tree
// as it goes.
type scanner struct {
	src   string
	pos   int
	stack []*Node

	// rawTopLevel treats every top-level element other than <template> as
	// raw text. SFC splitting uses it so custom blocks are never scanned.
	rawTopLevel bool
}

// Parse scans a template into a tree rooted at a NodeRoot.
func Parse(src string) (*Node, error) {
	return newScanner(src, false).scan()
}

func newScanner(src string, rawTopLevel bool) *scanner {
	root := &Node{
		Type:         NodeRoot,
		Range:        Range{Start: 0, End: len(src)},
		ContentRange: Range{Start: 0, End: len(src)},
		Closed:       true,
	}
	return &scanner{src: src, stack: []*Node{root}, rawTopLevel: rawTopLevel}
}

func (s *scanner) current() *Node {
	return s.stack[len(s.stack)-1]
}

func (s *scanner) appendChild(n *Node) {
	parent := s.current()
	parent.Children = append(parent.Children, n)
}

// scan runs the main loop.
func (s *scanner) scan() (*Node, error) {
	textStart := 0
	flushText := func() {
		if s.pos > textStart {
			r := Range{Start: textStart, End: s.pos}
			s.appendChild(&Node{Type: NodeText, Range: r, ContentRange: r})
		}
	}

	for s.pos < len(s.src) {
		var err error
		switch {
		case strings.HasPrefix(s.src[s.pos:], "{{"):
			flushText()
			err = s.scanInterpolation()
		case strings.HasPrefix(s.src[s.pos:], "<!--"):
			flushText()
			err = s.scanComment()
		case s.at("</") && s.pos+2 < len(s.src) && isTagStart(s.src[s.pos+2]):
			flushText()
			err = s.scanCloseTag()
		case s.src[s.pos] == '<' && s.pos+1 < len(s.src) && isTagStart(s.src[s.pos+1]):
			flushText()
			err = s.scanOpenTag()
		default:
			s.pos++
			continue
		}
		if err != nil {
			return nil, err
		}
		textStart = s.pos
	}
	flushText()

	// Unterminated elements run to end of input.
	for len(s.stack) > 1 {
		open := s.stack[len(s.stack)-1]
		open.Range.End = len(s.src)
		open.ContentRange.End = len(s.src)
		s.stack = s.stack[:len(s.stack)-1]
	}

	return s.stack[0], nil
}

func (s *scanner) at(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

func (s *scanner) scanInterpolation() error {
	start := s.pos
	end := strings.Index(s.src[start+2:], "}}")
	if end < 0 {
		return &SyntaxError{Offset: start, Message: "unterminated interpolation"}
	}
	end += start + 2

	s.appendChild(&Node{
		Type:         NodeInterpolation,
		Range:        Range{Start: start, End: end + 2},
		ContentRange: Range{Start: start + 2, End: end},
	})
	s.pos = end + 2
	return nil
}

func (s *scanner) scanComment() error {
	start := s.pos
	end := strings.Index(s.src[start+4:], "-->")
	if end < 0 {
		return &SyntaxError{Offset: start, Message: "unterminated comment"}
	}
	end += start + 4

	s.appendChild(&Node{
		Type:         NodeComment,
		Range:        Range{Start: start, End: end + 3},
		ContentRange: Range{Start: start + 4, End: end},
	})
	s.pos = end + 3
	return nil
}

// scanCloseTag pops the stack up to the matching open element. A closing
// tag with no open counterpart is ignored.
func (s *scanner) scanCloseTag() error {
	start := s.pos
	s.pos += 2
	name := s.scanTagName()

	end := strings.IndexByte(s.src[s.pos:], '>')
	if end < 0 {
		return &SyntaxError{Offset: start, Message: fmt.Sprintf("unterminated closing tag </%s", name)}
	}
	s.pos += end + 1

	for i := len(s.stack) - 1; i > 0; i-- {
		if s.stack[i].Tag != name {
			continue
		}
		for j := len(s.stack) - 1; j >= i; j-- {
			open := s.stack[j]
			if j == i {
				open.ContentRange.End = start
				open.Range.End = s.pos
				open.Closed = true
			} else {
				open.ContentRange.End = start
				open.Range.End = start
			}
		}
		s.stack = s.stack[:i]
		break
	}
	return nil
}

func (s *scanner) scanOpenTag() error {
	start := s.pos
	s.pos++
	node := &Node{Type: NodeElement, Tag: s.scanTagName()}
	node.Range.Start = start

	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return &SyntaxError{Offset: start, Message: fmt.Sprintf("unterminated tag <%s", node.Tag)}
		}
		if s.at("/>") {
			s.pos += 2
			node.SelfClosing = true
			break
		}
		if s.src[s.pos] == '>' {
			s.pos++
			break
		}

		attr, err := s.scanAttribute()
		if err != nil {
			return err
		}
		node.Attrs = append(node.Attrs, attr)
	}

	node.ContentRange = Range{Start: s.pos, End: s.pos}
	node.Range.End = s.pos
	s.appendChild(node)

	if node.SelfClosing || voidElements[strings.ToLower(node.Tag)] {
		node.SelfClosing = true
		node.Closed = true
		return nil
	}

	raw := rawTextElements[strings.ToLower(node.Tag)] ||
		(s.rawTopLevel && len(s.stack) == 1 && node.Tag != "template")
	if raw {
		return s.scanRawText(node)
	}

	s.stack = append(s.stack, node)
	return nil
}

// scanRawText consumes element content up to the matching closing tag
// without interpreting it.
func (s *scanner) scanRawText(node *Node) error {
	closing := "</" + node.Tag
	idx := indexFold(s.src[s.pos:], closing)
	if idx < 0 {
		return &SyntaxError{Offset: node.Range.Start, Message: fmt.Sprintf("unterminated <%s> element", node.Tag)}
	}

	contentEnd := s.pos + idx
	end := strings.IndexByte(s.src[contentEnd:], '>')
	if end < 0 {
		return &SyntaxError{Offset: contentEnd, Message: fmt.Sprintf("unterminated closing tag </%s", node.Tag)}
	}

	if contentEnd > s.pos {
		r := Range{Start: s.pos, End: contentEnd}
		node.Children = append(node.Children, &Node{Type: NodeText, Range: r, ContentRange: r})
	}
	node.ContentRange.End = contentEnd
	node.Range.End = contentEnd + end + 1
	node.Closed = true
	s.pos = node.Range.End
	return nil
}

func (s *scanner) scanTagName() string {
	start := s.pos
	for s.pos < len(s.src) && isTagNameChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) scanAttribute() (Attribute, error) {
	var attr Attribute
	start := s.pos

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isSpace(c) || c == '=' || c == '>' || c == '"' || c == '\'' || (c == '/' && s.at("/>")) {
			break
		}
		s.pos++
	}
	if s.pos == start {
		// Stray quote or similar; consume it so the loop advances.
		s.pos++
	}
	attr.Name = s.src[start:s.pos]
	attr.NameRange = Range{Start: start, End: s.pos}
	attr.Range = attr.NameRange

	save := s.pos
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '=' {
		s.pos = save
		return attr, nil
	}
	s.pos++
	s.skipSpace()

	if s.pos >= len(s.src) {
		return attr, &SyntaxError{Offset: start, Message: fmt.Sprintf("missing value for attribute %s", attr.Name)}
	}

	valueStart := s.pos
	if q := s.src[s.pos]; q == '"' || q == '\'' {
		end := strings.IndexByte(s.src[s.pos+1:], q)
		if end < 0 {
			return attr, &SyntaxError{Offset: valueStart, Message: fmt.Sprintf("unterminated value for attribute %s", attr.Name)}
		}
		s.pos += end + 2
		attr.Quote = q
		attr.Value = s.src[valueStart+1 : s.pos-1]
	} else {
		for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && s.src[s.pos] != '>' {
			s.pos++
		}
		attr.Value = s.src[valueStart:s.pos]
	}

	attr.HasValue = true
	attr.ValueRange = Range{Start: valueStart, End: s.pos}
	attr.Range.End = s.pos
	return attr, nil
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isTagStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return isTagStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.' || c == ':'
}

// indexFold is a case-insensitive strings.Index for ASCII needles.
func indexFold(s, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], needle) {
			return i
		}
	}
	return -1
}
