package mcts

import (
	"github.com/chewxy/math32"
	"github.com/notnil/chess"

	"github.com/lidiya207/chessbrain/game"
)

// nodeID indexes into the tree's node arena. Parents and children are
// linked by id rather than pointer so the tree forms no ownership cycle and
// the arena can grow without invalidating links.
type nodeID int32

const (
	nilNode nodeID = -1
	rootID  nodeID = 0
)

type node struct {
	pos      *game.Position
	parent   nodeID
	move     *chess.Move // move that produced this position, nil at the root
	children []nodeID
	visits   int32
	valueSum float32
	prior    float32
}

// tree is the arena holding every node of one search. A tree lives for
// exactly one Search call and is dropped wholesale when it returns.
type tree struct {
	nodes []node
}

func newTree(root *game.Position) *tree {
	t := &tree{nodes: make([]node, 0, 1024)}
	t.alloc(root, nilNode, nil, 0)
	return t
}

func (t *tree) alloc(pos *game.Position, parent nodeID, move *chess.Move, prior float32) nodeID {
	t.nodes = append(t.nodes, node{pos: pos, parent: parent, move: move, prior: prior})
	return nodeID(len(t.nodes) - 1)
}

func (t *tree) node(id nodeID) *node { return &t.nodes[id] }

func (t *tree) isExpanded(id nodeID) bool { return len(t.nodes[id].children) > 0 }

// meanValue is Q(s,a): the running average of backed-up values, 0 before
// the first visit.
func (t *tree) meanValue(id nodeID) float32 {
	n := t.node(id)
	if n.visits == 0 {
		return 0
	}
	return n.valueSum / float32(n.visits)
}

// selectChild returns the child maximising the PUCT upper confidence bound
//
//	U(s,a) = Q(s,a) + cPUCT * P(s,a) * sqrt(N_parent) / (1 + N_child)
//
// Ties go to the earliest child.
func (t *tree) selectChild(id nodeID, cPUCT float32) nodeID {
	parent := t.node(id)
	numerator := math32.Sqrt(float32(parent.visits))

	best := nilNode
	bestScore := math32.Inf(-1)
	for _, kid := range parent.children {
		child := t.node(kid)
		u := cPUCT * child.prior * numerator / (1 + float32(child.visits))
		score := t.meanValue(kid) + u
		if score > bestScore {
			bestScore = score
			best = kid
		}
	}
	return best
}

// expand creates one child per legal move with priors taken from the policy
// vector, masked down to the legal indices and renormalized. Terminal
// positions stay childless.
func (t *tree) expand(id nodeID, policy []float32) {
	pos := t.node(id).pos
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return
	}
	priors := legalPriors(policy, moves)
	for i, m := range moves {
		kid := t.alloc(pos.Apply(m), id, m, priors[i])
		// re-take the parent pointer: alloc may have grown the arena
		parent := t.node(id)
		parent.children = append(parent.children, kid)
	}
}

// legalPriors masks the raw policy down to the given moves and renormalizes
// so sibling priors sum to 1. NaN and negative entries count as zero; when
// no mass survives the mask the priors fall back to uniform, which keeps an
// untrained or broken evaluator from stalling the search.
func legalPriors(policy []float32, moves []*chess.Move) []float32 {
	priors := make([]float32, len(moves))
	var sum float32
	for i, m := range moves {
		idx := game.MoveIndex(m)
		var p float32
		if idx < len(policy) {
			p = policy[idx]
		}
		if math32.IsNaN(p) || p < 0 {
			p = 0
		}
		priors[i] = p
		sum += p
	}
	if sum <= math32.SmallestNonzeroFloat32 {
		uniform := 1 / float32(len(moves))
		for i := range priors {
			priors[i] = uniform
		}
		return priors
	}
	for i := range priors {
		priors[i] /= sum
	}
	return priors
}

// backpropagate walks the parent chain from id up to the root, counting the
// visit and adding the value at every node on the path. The sign flips once
// per edge: each node stores values from the perspective of its own side to
// move, and turns alternate in a zero-sum game.
func (t *tree) backpropagate(id nodeID, value float32) {
	for id != nilNode {
		n := t.node(id)
		n.visits++
		n.valueSum += value
		value = -value
		id = n.parent
	}
}
