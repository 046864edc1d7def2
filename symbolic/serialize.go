package symbolic

import (
	"fmt"
	"strings"

	"github.com/coregx/srm/internal/textenc"
)

// Node text format:
//
//	E  Epsilon          N  Nothing
//	a  \A    z  \z      ^  BOL    $  EOL    b  \b    B  \B
//	Z  \Z    Y  reversed \Z
//	S(pred)             singleton, pred in the algebra's own encoding
//	W(len)              watchdog
//	C(head,tail)        concatenation
//	L(body,lo,hi,lazy)  loop; hi is ~1 when unbounded, lazy is 0 or 1
//	O(x,y,...)          alternation
//	A(x,y,...)          conjunction
//	!(x)                complement
//	I(c,t,e)            if-then-else
//
// Predicate encodings never contain ')', and integers never contain ','.

var anchorTags = map[Kind]byte{
	KindStartAnchor:     'a',
	KindEndAnchor:       'z',
	KindBOLAnchor:       '^',
	KindEOLAnchor:       '$',
	KindWordBoundary:    'b',
	KindNonWordBoundary: 'B',
	KindEndZAnchor:      'Z',
	KindStartZAnchor:    'Y',
}

// Serialize encodes n as a single line of visible ASCII text.
func (b *Builder[P]) Serialize(n *Node[P]) string {
	var sb strings.Builder
	b.serialize(&sb, n)
	return sb.String()
}

func (b *Builder[P]) serialize(sb *strings.Builder, n *Node[P]) {
	switch n.kind {
	case KindEpsilon:
		sb.WriteByte('E')
	case KindNothing:
		sb.WriteByte('N')
	case KindSingleton:
		sb.WriteString("S(")
		sb.WriteString(b.alg.SerializePredicate(n.pred))
		sb.WriteByte(')')
	case KindWatchDog:
		sb.WriteString("W(")
		sb.WriteString(textenc.EncodeInt(n.lower))
		sb.WriteByte(')')
	case KindConcat:
		sb.WriteString("C(")
		b.serialize(sb, n.left)
		sb.WriteByte(',')
		b.serialize(sb, n.right)
		sb.WriteByte(')')
	case KindLoop:
		sb.WriteString("L(")
		b.serialize(sb, n.left)
		sb.WriteByte(',')
		sb.WriteString(textenc.EncodeInt(n.lower))
		sb.WriteByte(',')
		sb.WriteString(textenc.EncodeInt(n.upper))
		if n.lazy {
			sb.WriteString(",1)")
		} else {
			sb.WriteString(",0)")
		}
	case KindOr, KindAnd:
		if n.kind == KindOr {
			sb.WriteString("O(")
		} else {
			sb.WriteString("A(")
		}
		for i, a := range n.alts {
			if i > 0 {
				sb.WriteByte(',')
			}
			b.serialize(sb, a)
		}
		sb.WriteByte(')')
	case KindNot:
		sb.WriteString("!(")
		b.serialize(sb, n.left)
		sb.WriteByte(')')
	case KindIfThenElse:
		sb.WriteString("I(")
		b.serialize(sb, n.left)
		sb.WriteByte(',')
		b.serialize(sb, n.right)
		sb.WriteByte(',')
		b.serialize(sb, n.third)
		sb.WriteByte(')')
	default:
		sb.WriteByte(anchorTags[n.kind])
	}
}

// Deserialize decodes text written by Serialize.
func (b *Builder[P]) Deserialize(text string) (*Node[P], error) {
	p := &nodeParser[P]{b: b, s: text}
	n, err := p.node()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("trailing text")
	}
	return n, nil
}

type nodeParser[P comparable] struct {
	b   *Builder[P]
	s   string
	pos int
}

func (p *nodeParser[P]) errorf(format string, args ...any) error {
	return fmt.Errorf("symbolic: node text at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *nodeParser[P]) expect(c byte) error {
	if p.pos >= len(p.s) || p.s[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

// token returns the text up to the next ',' or ')'.
func (p *nodeParser[P]) token() string {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ',' && p.s[p.pos] != ')' {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *nodeParser[P]) int() (int, error) {
	v, err := textenc.DecodeInt(p.token())
	if err != nil {
		return 0, p.errorf("%v", err)
	}
	return v, nil
}

// list parses "x,y,...)" after an opening parenthesis.
func (p *nodeParser[P]) list() ([]*Node[P], error) {
	var ns []*Node[P]
	for {
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
		if p.pos < len(p.s) && p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		return ns, p.expect(')')
	}
}

func (p *nodeParser[P]) node() (*Node[P], error) {
	if p.pos >= len(p.s) {
		return nil, p.errorf("unexpected end")
	}
	b := p.b
	tag := p.s[p.pos]
	p.pos++
	for kind, t := range anchorTags {
		if t == tag {
			return b.Anchor(kind), nil
		}
	}
	switch tag {
	case 'E':
		return b.epsilon, nil
	case 'N':
		return b.nothing, nil
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	switch tag {
	case 'S':
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] != ')' {
			p.pos++
		}
		pred, err := b.alg.DeserializePredicate(p.s[start:p.pos])
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		return b.Singleton(pred), p.expect(')')
	case 'W':
		k, err := p.int()
		if err != nil {
			return nil, err
		}
		return b.WatchDog(k), p.expect(')')
	case 'L':
		body, err := p.node()
		if err != nil {
			return nil, err
		}
		var bounds [3]int
		for i := range bounds {
			if err := p.expect(','); err != nil {
				return nil, err
			}
			if bounds[i], err = p.int(); err != nil {
				return nil, err
			}
		}
		if bounds[2] != 0 && bounds[2] != 1 {
			return nil, p.errorf("invalid lazy flag %d", bounds[2])
		}
		return b.Loop(body, bounds[0], bounds[1], bounds[2] == 1), p.expect(')')
	case 'C', 'O', 'A', '!', 'I':
		ns, err := p.list()
		if err != nil {
			return nil, err
		}
		switch {
		case tag == 'C' && len(ns) == 2:
			return b.Concat(ns...), nil
		case tag == 'O':
			return b.Or(ns...), nil
		case tag == 'A':
			return b.And(ns...), nil
		case tag == '!' && len(ns) == 1:
			return b.Not(ns[0]), nil
		case tag == 'I' && len(ns) == 3:
			return b.IfThenElse(ns[0], ns[1], ns[2]), nil
		}
		return nil, p.errorf("wrong arity %d for %q", len(ns), tag)
	}
	return nil, p.errorf("unknown node tag %q", tag)
}
