package mcts

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/lidiya207/chessbrain/game"
)

func TestExpandPriors(t *testing.T) {
	pos := game.NewPosition()
	moves := pos.LegalMoves()

	policy := make([]float32, game.NumActions)
	policy[game.MoveIndex(moves[0])] = 0.5
	policy[game.MoveIndex(moves[1])] = 0.25

	tr := newTree(pos)
	tr.expand(rootID, policy)

	root := tr.node(rootID)
	require.Len(t, root.children, len(moves))

	var sum float32
	for i, kid := range root.children {
		child := tr.node(kid)
		require.Equal(t, rootID, child.parent)
		require.Equal(t, moves[i], child.move)
		sum += child.prior
	}
	require.InDelta(t, 1, sum, 1e-5, "sibling priors renormalize to 1")
	require.InDelta(t, 2.0/3.0, tr.node(root.children[0]).prior, 1e-5)
	require.InDelta(t, 1.0/3.0, tr.node(root.children[1]).prior, 1e-5)
}

func TestExpandUniformFallback(t *testing.T) {
	pos := game.NewPosition()
	moves := pos.LegalMoves()

	tr := newTree(pos)
	tr.expand(rootID, make([]float32, game.NumActions))

	uniform := 1 / float32(len(moves))
	for _, kid := range tr.node(rootID).children {
		require.Equal(t, uniform, tr.node(kid).prior)
	}
}

func TestLegalPriorsRejectsGarbage(t *testing.T) {
	pos := game.NewPosition()
	moves := pos.LegalMoves()[:3]

	policy := make([]float32, game.NumActions)
	policy[game.MoveIndex(moves[0])] = math32.NaN()
	policy[game.MoveIndex(moves[1])] = -0.5
	policy[game.MoveIndex(moves[2])] = 0.25

	priors := legalPriors(policy, moves)
	require.Equal(t, []float32{0, 0, 1}, priors)

	// nothing but garbage: uniform fallback
	priors = legalPriors(policy, moves[:2])
	require.Equal(t, []float32{0.5, 0.5}, priors)
}

func TestSelectChildPUCT(t *testing.T) {
	pos := game.NewPosition()

	tr := newTree(pos)
	tr.expand(rootID, make([]float32, game.NumActions))
	root := tr.node(rootID)
	root.visits = 4

	a, b := root.children[0], root.children[1]
	tr.node(a).prior = 0.8
	tr.node(b).prior = 0.2
	tr.node(b).visits = 2
	tr.node(b).valueSum = 1.4

	// U(a) = 0 + 1*0.8*2/1 = 1.6 beats U(b) = 0.7 + 1*0.2*2/3
	require.Equal(t, a, tr.selectChild(rootID, 1))

	// higher Q on b dominates once exploration is cheap
	tr.node(b).valueSum = 40
	require.Equal(t, b, tr.selectChild(rootID, 0.01))
}

func TestSelectChildTieBreaksFirst(t *testing.T) {
	pos := game.NewPosition()
	tr := newTree(pos)
	tr.expand(rootID, make([]float32, game.NumActions))

	// uniform priors, no visits anywhere: every score ties
	require.Equal(t, tr.node(rootID).children[0], tr.selectChild(rootID, 1))
}

func TestBackpropagateParity(t *testing.T) {
	pos := game.NewPosition()
	tr := newTree(pos)

	moves := pos.LegalMoves()
	childPos := pos.Apply(moves[0])
	child := tr.alloc(childPos, rootID, moves[0], 1)
	tr.node(rootID).children = append(tr.node(rootID).children, child)

	replies := childPos.LegalMoves()
	grandPos := childPos.Apply(replies[0])
	grand := tr.alloc(grandPos, child, replies[0], 1)
	tr.node(child).children = append(tr.node(child).children, grand)

	tr.backpropagate(grand, 0.75)

	require.Equal(t, float32(0.75), tr.node(grand).valueSum)
	require.Equal(t, float32(-0.75), tr.node(child).valueSum, "sign flips once per edge")
	require.Equal(t, float32(0.75), tr.node(rootID).valueSum)
	for _, id := range []nodeID{rootID, child, grand} {
		require.Equal(t, int32(1), tr.node(id).visits)
	}
}

func TestMeanValue(t *testing.T) {
	tr := newTree(game.NewPosition())
	require.Equal(t, float32(0), tr.meanValue(rootID), "unvisited nodes score 0")

	tr.backpropagate(rootID, 1)
	tr.backpropagate(rootID, 0.5)
	require.InDelta(t, 0.75, tr.meanValue(rootID), 1e-6)
}
