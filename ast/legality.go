package ast

import "fmt"

// CheckLegality runs the post-parse, post-convergence-rewiring invariant
// checks from spec §4.1 "Legality check" / §3 "AST invariants":
//
//   - exactly one node has (Loss != "" && Next == NoID);
//   - no node's Next is the root id;
//   - every divergence successor and every convergence path resolves to a
//     node in the AST;
//   - every layer has positive width and a non-null activation, unless it
//     is the root (Input may have a null activation);
//   - every convergence node has a non-null operator and a valid path.
func (a *AST) CheckLegality() error {
	if a.Root == NoID {
		return ErrNoRoot
	}
	root, ok := a.Get(a.Root)
	if !ok {
		return ErrNoRoot
	}
	if root.Kind != KindLayer {
		return ErrRootNotLayer
	}

	outputs := 0
	for _, n := range a.Nodes {
		switch n.Kind {
		case KindLayer:
			if n.Width <= 0 {
				return fmt.Errorf("ast: layer %q: %w", n.Name, ErrZeroWidth)
			}
			if n.Activation == "" && n.ID != a.Root {
				return fmt.Errorf("ast: layer %q: %w", n.Name, ErrMissingActivation)
			}
			if n.Next == a.Root {
				return fmt.Errorf("ast: layer %q: %w", n.Name, ErrNextIsRoot)
			}
			if n.HasLoss() {
				outputs++
				if n.Next != NoID {
					return fmt.Errorf("ast: output layer %q has a successor", n.Name)
				}
			} else if n.Next == NoID {
				return fmt.Errorf("ast: non-output layer %q has no successor: %w", n.Name, ErrNoOutput)
			}
		case KindDivergence:
			if len(n.Branches) == 0 {
				return fmt.Errorf("ast: divergence %q has no branches", n.Name)
			}
			for _, b := range n.Branches {
				if b == NoID {
					return fmt.Errorf("ast: divergence %q: %w", n.Name, ErrDanglingTarget)
				}
				if b == a.Root {
					return fmt.Errorf("ast: divergence %q: %w", n.Name, ErrNextIsRoot)
				}
				if _, ok := a.Get(b); !ok {
					return fmt.Errorf("ast: divergence %q: branch %d: %w", n.Name, b, ErrDanglingTarget)
				}
			}
			if n.Next == a.Root {
				return fmt.Errorf("ast: divergence %q: %w", n.Name, ErrNextIsRoot)
			}
		case KindConvergence:
			if n.Operator == "" {
				return fmt.Errorf("ast: convergence %q: %w", n.Name, ErrMissingOperator)
			}
			if n.Path == NoID {
				return fmt.Errorf("ast: convergence %q: %w", n.Name, ErrMissingPath)
			}
			if _, ok := a.Get(n.Path); !ok {
				return fmt.Errorf("ast: convergence %q: %w", n.Name, ErrDanglingTarget)
			}
			if n.Next == a.Root {
				return fmt.Errorf("ast: convergence %q: %w", n.Name, ErrNextIsRoot)
			}
		}
	}

	if outputs == 0 {
		return ErrNoOutput
	}
	if outputs > 1 {
		return ErrMultipleOutputs
	}
	return nil
}
