package aba

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidDepth indicates a non-positive dispute-tree depth bound.
var ErrInvalidDepth = errors.New("dispute depth must be positive")

// Move distinguishes proponent and opponent nodes in a dispute tree.
type Move string

const (
	// ProponentMove asserts an argument for a claim using the current
	// assumptions.
	ProponentMove Move = "proponent"

	// OpponentMove attacks the proponent's last argument by deriving the
	// contrary of one of its assumptions.
	OpponentMove Move = "opponent"
)

// Node is a single move in a dispute tree.
type Node struct {
	// Move marks which side played this node.
	Move Move `json:"move"`

	// Claim is the atom argued for: the goal or counter-claim for proponent
	// nodes, the derived contrary for opponent nodes.
	Claim string `json:"claim"`

	// Target is the proponent assumption under attack. Opponent nodes only.
	Target string `json:"target,omitempty"`

	// Assumptions is the support set backing this move's argument.
	Assumptions []string `json:"assumptions"`

	// Children holds the replies: opponent attacks under a proponent node,
	// the winning proponent counter under a defeated opponent node.
	Children []*Node `json:"children,omitempty"`

	// Defeated reports whether the proponent countered this opponent move.
	Defeated bool `json:"defeated,omitempty"`
}

// Tree is a complete dispute tree for one opening support of the goal. It is
// immutable once produced and owns snapshots of every assumption set it
// mentions, so it stands alone as an explanation artifact after the
// framework changes or is discarded.
type Tree struct {
	// Goal is the claim the proponent argues for.
	Goal string `json:"goal"`

	// Root is the opening proponent move.
	Root *Node `json:"root"`

	// Admissible is true when every opponent move in the tree is defeated.
	Admissible bool `json:"admissible"`

	// Converged is false when the depth bound truncated the search, in which
	// case the tree is a partial, best-effort result.
	Converged bool `json:"converged"`

	// Defence is the union of assumptions used by proponent moves, sorted.
	Defence []string `json:"defence"`
}

type disputeState struct {
	truncated bool
}

// DisputeTrees builds one dispute tree per minimal opening support of goal,
// without AF translation. Opponent moves are tried in the order contraries
// were registered; the proponent backtracks over counter-attacks it cannot
// win. Every move consumes search depth, so the construction terminates on
// cyclic rule sets; hitting maxDepth yields Converged == false instead of
// looping. A goal with no support yields an empty slice, which is a valid
// outcome, not an error.
func (f *Framework) DisputeTrees(goal string, maxDepth int) ([]*Tree, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("%d: %w", maxDepth, ErrInvalidDepth)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !f.assumptions[goal] && len(f.rulesByHead[goal]) == 0 {
		return nil, fmt.Errorf("dispute goal %q: %w", goal, ErrUndefinedAtom)
	}

	trees := make([]*Tree, 0)
	for _, support := range f.supports(goal, make(map[string]bool)) {
		st := &disputeState{}
		root, admissible := f.expandProponent(goal, support, maxDepth, st)
		trees = append(trees, &Tree{
			Goal:       goal,
			Root:       root,
			Admissible: admissible && !st.truncated,
			Converged:  !st.truncated,
			Defence:    collectDefence(root),
		})
	}
	return trees, nil
}

// expandProponent plays a proponent move and resolves every opponent reply.
// The returned flag reports whether all replies were defeated.
func (f *Framework) expandProponent(claim string, support Support, depth int, st *disputeState) (*Node, bool) {
	node := &Node{
		Move:        ProponentMove,
		Claim:       claim,
		Assumptions: append([]string(nil), support...),
	}
	if depth <= 0 {
		st.truncated = true
		return node, false
	}

	admissible := true
	for _, assumption := range f.contraryOrder {
		if !supportContains(support, assumption) {
			continue
		}
		contrary := f.contraries[assumption]
		for _, opposing := range f.supports(contrary, make(map[string]bool)) {
			con := &Node{
				Move:        OpponentMove,
				Claim:       contrary,
				Target:      assumption,
				Assumptions: append([]string(nil), opposing...),
			}
			con.Defeated = f.defend(con, opposing, depth-1, st)
			admissible = admissible && con.Defeated
			node.Children = append(node.Children, con)
		}
	}
	return node, admissible
}

// defend searches for a proponent counter-attack on the opponent's
// assumption set, backtracking over assumptions and supports until one
// admissible counter is found. The winning counter becomes the opponent
// node's child; failed attempts are discarded.
func (f *Framework) defend(con *Node, opposing Support, depth int, st *disputeState) bool {
	if depth <= 0 {
		st.truncated = true
		return false
	}
	for _, assumption := range f.contraryOrder {
		if !supportContains(opposing, assumption) {
			continue
		}
		contrary := f.contraries[assumption]
		for _, counter := range f.supports(contrary, make(map[string]bool)) {
			child, admissible := f.expandProponent(contrary, counter, depth-1, st)
			if admissible {
				con.Children = append(con.Children, child)
				return true
			}
		}
	}
	return false
}

// collectDefence gathers the assumptions used by proponent moves that
// survived into the final tree.
func collectDefence(root *Node) []string {
	seen := make(map[string]bool)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Move == ProponentMove {
			for _, a := range n.Assumptions {
				seen[a] = true
			}
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	defence := make([]string, 0, len(seen))
	for a := range seen {
		defence = append(defence, a)
	}
	sort.Strings(defence)
	return defence
}

func supportContains(s Support, atom string) bool {
	for _, a := range s {
		if a == atom {
			return true
		}
	}
	return false
}
