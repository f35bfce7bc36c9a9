package clue

// Build folds a flat token sequence into a Constraint.
//
// The first operator in the sequence is always folded with its immediate
// neighbours into a tree node, which takes the left neighbour's position;
// this repeats until one token remains. The result is left-associative:
// "a | b | c" builds as (a|b)|c.
//
// Each pass rescans from the start, so building is O(n²) in the number of
// tokens. Clues have a handful of leaves; switch to a single-pass stack fold
// if that ever changes.
//
// Fails with ErrCodeInvalidConstraint when the sequence has fewer than two
// tokens, an operator lacks a neighbour on either side, or the final token is
// not a tree node.
func Build(tokens []Token) (Constraint, error) {
	if len(tokens) <= 1 {
		return Constraint{}, newConstraintError("clue needs at least two elements joined by an operator")
	}

	work := append([]Token(nil), tokens...)

	for len(work) > 1 {
		i := firstOp(work)
		if i < 0 {
			return Constraint{}, newConstraintError("elements must be joined by an operator")
		}
		if i == 0 || i == len(work)-1 {
			return Constraint{}, newConstraintError("operator is missing an operand")
		}

		left, op, right := work[i-1], work[i], work[i+1]
		if left.Kind == KindOp || right.Kind == KindOp {
			return Constraint{}, newConstraintError("operator is missing an operand")
		}

		work[i-1] = Tree(op.Op, left, right)
		work = append(work[:i], work[i+2:]...)
	}

	root := work[0]
	if root.Kind != KindTree {
		return Constraint{}, newConstraintError("clue needs at least two elements joined by an operator")
	}
	return Constraint{root: &root}, nil
}

func firstOp(tokens []Token) int {
	for i, t := range tokens {
		if t.Kind == KindOp {
			return i
		}
	}
	return -1
}
