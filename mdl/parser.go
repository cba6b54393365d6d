package mdl

import (
	"fmt"

	"github.com/LucAlexander/NeuroMorph/ast"
	"github.com/LucAlexander/NeuroMorph/registry"
)

// Parse tokenizes and parses an MDL description (spec §4.1), producing the
// Header (weight/bias initializer selection) and the AST with convergence
// rewiring and legality already applied. On any failure it returns no AST
// and no Header — the caller should treat the error as the diagnostic.
func Parse(description string) (*ast.AST, Header, error) {
	s := newScanner(description)

	header, err := parseHeader(s)
	if err != nil {
		return nil, Header{}, err
	}

	tree := ast.New()
	p := &parser{s: s, tree: tree}

	if _, _, err := p.parseChain(nil, stopAtEOF); err != nil {
		return nil, Header{}, err
	}
	s.skipSpace()
	if !s.atEOF() {
		r, _ := s.peek()
		return nil, Header{}, fmt.Errorf("mdl: unexpected trailing %q at position %d: %w", r, s.pos, ErrUnexpectedToken)
	}

	if err := tree.ConvergeBranches(); err != nil {
		return nil, Header{}, err
	}
	if err := tree.CheckLegality(); err != nil {
		return nil, Header{}, err
	}

	return tree, header, nil
}

type parser struct {
	s    *scanner
	tree *ast.AST
}

// stopSet tells parseChain which lookahead runes end a segment+ sequence
// without being consumed by it.
type stopSet func(r rune, atEOF bool) bool

func stopAtEOF(_ rune, atEOF bool) bool { return atEOF }

func stopAtBranch(r rune, atEOF bool) bool { return atEOF || r == '|' || r == ']' }

// parseChain parses one or more segments in sequence (the grammar's
// "segment+"), wiring each segment's predecessor.Next to it as it starts
// (spec §4.1 parser contract). prev, if non-nil, is the dangling tail from
// an enclosing context (e.g. the node before a divergence in the top-level
// chain); it is wired to the first segment parsed here. It returns the id
// of the first segment parsed (the branch head) and the tail node that a
// subsequent sibling segment should link from.
func (p *parser) parseChain(prev *ast.Node, stop stopSet) (int64, *ast.Node, error) {
	var head int64 = ast.NoID
	cur := prev
	for {
		node, tail, err := p.parseSegment(cur)
		if err != nil {
			return ast.NoID, nil, err
		}
		if head == ast.NoID {
			head = node.ID
		}
		cur = tail

		p.s.skipSpace()
		r, ok := p.s.peek()
		if stop(r, !ok) {
			break
		}
	}
	return head, cur, nil
}

// parseSegment parses exactly one layer, divergence, or convergence segment.
// If prev is non-nil, prev.Next is set to this segment's id before its body
// is parsed; a name collision with an already-declared node is reported by
// ast.Insert when the segment is inserted. It returns the created node and
// the tail node that should be linked to whatever segment follows.
func (p *parser) parseSegment(prev *ast.Node) (*ast.Node, *ast.Node, error) {
	p.s.skipSpace()
	r, ok := p.s.peek()
	if !ok {
		return nil, nil, fmt.Errorf("mdl: expected a segment: %w", ErrTruncatedInput)
	}
	switch r {
	case '(':
		return p.parseLayer(prev)
	case '[':
		return p.parseDivergence(prev)
	case '{':
		return p.parseConvergence(prev)
	default:
		return nil, nil, fmt.Errorf("mdl: unexpected %q at position %d (expected '(', '[', or '{'): %w", r, p.s.pos, ErrUnexpectedToken)
	}
}

func (p *parser) parseLayer(prev *ast.Node) (*ast.Node, *ast.Node, error) {
	s := p.s
	if err := s.expect('('); err != nil {
		return nil, nil, err
	}
	name, err := s.scanName()
	if err != nil {
		return nil, nil, err
	}
	n := &ast.Node{ID: ast.HashName(name), Name: name, Kind: ast.KindLayer, Next: ast.NoID}
	if len(p.tree.Nodes) == 0 {
		n.Input = true
	}
	if prev != nil {
		prev.Next = n.ID
	}

	if err := s.expect(','); err != nil {
		return nil, nil, fmt.Errorf("mdl: layer %q: %w", name, err)
	}
	width, err := s.scanPositiveInt()
	if err != nil {
		return nil, nil, fmt.Errorf("mdl: layer %q: %w", name, err)
	}
	n.Width = width

	literalCount := 0
	for {
		s.skipSpace()
		r, ok := s.peek()
		if !ok {
			return nil, nil, fmt.Errorf("mdl: layer %q: %w", name, ErrTruncatedInput)
		}
		if r == ')' {
			s.pos++
			break
		}
		if err := s.expect(','); err != nil {
			return nil, nil, fmt.Errorf("mdl: layer %q: %w", name, err)
		}
		fname, param, hasParam, err := p.parseFuncLiteral()
		if err != nil {
			return nil, nil, fmt.Errorf("mdl: layer %q: %w", name, err)
		}
		if _, err := registry.LookupLoss(fname); err == nil {
			n.Loss = fname
			n.LossParam = param
			n.HasLossParam = hasParam
		} else if _, err := registry.LookupActivation(fname); err == nil {
			n.Activation = fname
			n.ActivationParam = param
			n.HasActivationParam = hasParam
		} else {
			return nil, nil, fmt.Errorf("mdl: layer %q: function %q: %w", name, fname, ErrUnknownFunction)
		}
		literalCount++
	}
	_ = literalCount

	if err := p.tree.Insert(n); err != nil {
		return nil, nil, err
	}
	return n, n, nil
}

// parseFuncLiteral consumes "<" func-name ("," number)? ">".
func (p *parser) parseFuncLiteral() (string, float64, bool, error) {
	s := p.s
	if err := s.expect('<'); err != nil {
		return "", 0, false, err
	}
	name, err := s.scanName()
	if err != nil {
		return "", 0, false, err
	}
	var param float64
	hasParam := false
	s.skipSpace()
	if r, ok := s.peek(); ok && r == ',' {
		s.pos++
		param, err = s.scanNumber()
		if err != nil {
			return "", 0, false, err
		}
		hasParam = true
	}
	if err := s.expect('>'); err != nil {
		return "", 0, false, err
	}
	return name, param, hasParam, nil
}

func (p *parser) parseDivergence(prev *ast.Node) (*ast.Node, *ast.Node, error) {
	s := p.s
	if err := s.expect('['); err != nil {
		return nil, nil, err
	}
	name, err := s.scanName()
	if err != nil {
		return nil, nil, err
	}
	n := &ast.Node{ID: ast.HashName(name), Name: name, Kind: ast.KindDivergence, Next: ast.NoID}
	if prev != nil {
		prev.Next = n.ID
	}
	if err := p.tree.Insert(n); err != nil {
		return nil, nil, err
	}
	if err := s.expect(','); err != nil {
		return nil, nil, fmt.Errorf("mdl: divergence %q: %w", name, err)
	}

	var lastTail *ast.Node
	for {
		branchHead, tail, err := p.parseChain(nil, stopAtBranch)
		if err != nil {
			return nil, nil, fmt.Errorf("mdl: divergence %q: %w", name, err)
		}
		n.Branches = append(n.Branches, branchHead)
		lastTail = tail

		s.skipSpace()
		r, ok := s.peek()
		if !ok {
			return nil, nil, fmt.Errorf("mdl: divergence %q: %w", name, ErrUnclosedBracket)
		}
		if r == '|' {
			s.pos++
			continue
		}
		if r == ']' {
			s.pos++
			break
		}
		return nil, nil, fmt.Errorf("mdl: divergence %q: unexpected %q at position %d: %w", name, r, s.pos, ErrUnexpectedToken)
	}

	return n, lastTail, nil
}

func (p *parser) parseConvergence(prev *ast.Node) (*ast.Node, *ast.Node, error) {
	s := p.s
	if err := s.expect('{'); err != nil {
		return nil, nil, err
	}
	name, err := s.scanName()
	if err != nil {
		return nil, nil, err
	}
	n := &ast.Node{ID: ast.HashName(name), Name: name, Kind: ast.KindConvergence, Next: ast.NoID, Path: ast.NoID}
	if prev != nil {
		prev.Next = n.ID
	}

	if err := s.expect(','); err != nil {
		return nil, nil, fmt.Errorf("mdl: convergence %q: %w", name, err)
	}
	target, err := s.scanName()
	if err != nil {
		return nil, nil, fmt.Errorf("mdl: convergence %q: %w", name, err)
	}
	n.Path = ast.HashName(target)

	if err := s.expect(','); err != nil {
		return nil, nil, fmt.Errorf("mdl: convergence %q: %w", name, err)
	}
	op, err := s.scanName()
	if err != nil {
		return nil, nil, fmt.Errorf("mdl: convergence %q: %w", name, err)
	}
	if _, err := registry.LookupConvergence(op); err != nil {
		return nil, nil, fmt.Errorf("mdl: convergence %q: operator %q: %w", name, op, ErrUnrecognizedOperator)
	}
	n.Operator = op

	if err := s.expect('}'); err != nil {
		return nil, nil, fmt.Errorf("mdl: convergence %q: %w", name, err)
	}

	if err := p.tree.Insert(n); err != nil {
		return nil, nil, err
	}
	return n, n, nil
}
