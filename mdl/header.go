package mdl

import (
	"fmt"

	"github.com/LucAlexander/NeuroMorph/registry"
)

// Header holds the two resolved initializer selections from the MDL header
// sub-grammar (spec §6.1): a weight initializer and a bias initializer,
// declared in any order, each with its parsed numeric parameters.
type Header struct {
	WeightInit       registry.WeightInitEntry
	WeightInitParams []float64
	BiasInit         registry.BiasInitEntry
	BiasInitParams   []float64
}

type initCall struct {
	name   string
	params []float64
}

// parseHeader consumes "/" init-call ("," init-call)* "/" and resolves the
// two init-calls against the registry, in whichever order they appeared.
func parseHeader(s *scanner) (Header, error) {
	if err := s.expect('/'); err != nil {
		return Header{}, fmt.Errorf("mdl header: %w", err)
	}

	var calls []initCall
	for {
		call, err := parseInitCall(s)
		if err != nil {
			return Header{}, err
		}
		calls = append(calls, call)

		s.skipSpace()
		r, ok := s.peek()
		if !ok {
			return Header{}, fmt.Errorf("mdl header: %w", ErrTruncatedInput)
		}
		if r == ',' {
			s.pos++
			continue
		}
		if r == '/' {
			s.pos++
			break
		}
		return Header{}, fmt.Errorf("mdl header: unexpected %q at position %d: %w", r, s.pos, ErrMalformedHeader)
	}

	var h Header
	var haveWeight, haveBias bool
	for _, c := range calls {
		switch {
		case registry.IsWeightInit(c.name):
			entry, err := registry.LookupWeightInit(c.name)
			if err != nil {
				return Header{}, fmt.Errorf("mdl header: %w", err)
			}
			if len(c.params) != entry.Arity {
				return Header{}, fmt.Errorf("mdl header: %q expects %d parameter(s), got %d: %w", c.name, entry.Arity, len(c.params), ErrMalformedHeader)
			}
			h.WeightInit = entry
			h.WeightInitParams = c.params
			haveWeight = true
		case registry.IsBiasInit(c.name):
			entry, err := registry.LookupBiasInit(c.name)
			if err != nil {
				return Header{}, fmt.Errorf("mdl header: %w", err)
			}
			if len(c.params) != entry.Arity {
				return Header{}, fmt.Errorf("mdl header: %q expects %d parameter(s), got %d: %w", c.name, entry.Arity, len(c.params), ErrMalformedHeader)
			}
			h.BiasInit = entry
			h.BiasInitParams = c.params
			haveBias = true
		default:
			return Header{}, fmt.Errorf("mdl header: %q is neither a weight nor a bias initializer: %w", c.name, ErrMalformedHeader)
		}
	}
	if !haveWeight || !haveBias {
		return Header{}, fmt.Errorf("mdl header: must declare exactly one weight and one bias initializer: %w", ErrMalformedHeader)
	}
	return h, nil
}

// parseInitCall consumes name (" " number)*, stopping before the next
// "," or "/" in the header.
func parseInitCall(s *scanner) (initCall, error) {
	name, err := s.scanName()
	if err != nil {
		return initCall{}, fmt.Errorf("mdl header: %w", err)
	}
	call := initCall{name: name}
	for s.peekNumberAhead() {
		v, err := s.scanNumber()
		if err != nil {
			return initCall{}, fmt.Errorf("mdl header: init-call %q: %w", name, err)
		}
		call.params = append(call.params, v)
	}
	return call, nil
}
