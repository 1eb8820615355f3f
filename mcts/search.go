// Package mcts implements the neural-guided Monte Carlo tree search that
// picks moves and produces the visit-count policy targets used to train the
// evaluator.
package mcts

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/notnil/chess"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/lidiya207/chessbrain/game"
)

// Inferencer is the evaluator capability: a probability distribution over
// the action space plus a scalar value in [-1, 1], both from the point of
// view of the side to move.
type Inferencer interface {
	Infer(pos *game.Position) (policy []float32, value float32)
}

// MCTS runs neural-guided searches. An instance may be reused across moves
// and games; every Search call builds and discards its own tree, so there is
// no shared mutable state between calls.
type MCTS struct {
	Config
	nn  Inferencer
	rng *exprand.Rand
}

// Option mutates an MCTS during construction.
type Option func(*MCTS)

// WithSeed pins the exploration-noise source, mainly for tests.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) { m.rng = exprand.New(exprand.NewSource(seed)) }
}

func New(conf Config, nn Inferencer, opts ...Option) *MCTS {
	if !conf.IsValid() {
		panic("mcts: config is not valid. Unable to proceed")
	}
	m := &MCTS{
		Config: conf,
		nn:     nn,
		rng:    exprand.New(exprand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Search runs one full decision cycle from pos. It returns the chosen move
// together with the temperature-adjusted visit-count distribution over the
// action space, the policy target for training. When pos has no legal moves
// the move is nil, the target is all zeros and no simulation is run; callers
// must check for the nil move before applying it.
func (m *MCTS) Search(pos *game.Position) (*chess.Move, []float32) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil, make([]float32, game.NumActions)
	}

	policy, _ := m.nn.Infer(pos)
	policy = m.blendRootNoise(policy, moves)

	t := newTree(pos)
	t.expand(rootID, policy)

	for i := 0; i < m.NumSimulations; i++ {
		id := rootID
		for t.isExpanded(id) && !t.node(id).pos.IsTerminal() {
			id = t.selectChild(id, m.PUCT)
		}

		leaf := t.node(id).pos
		var value float32
		if result, ok := leaf.Result(); ok {
			value = result
		} else {
			var leafPolicy []float32
			leafPolicy, value = m.nn.Infer(leaf)
			t.expand(id, leafPolicy)
		}
		t.backpropagate(id, value)
	}

	target := ApplyTemperature(policyTarget(t, moves), m.Temperature)
	return bestMove(target, moves), target
}

// blendRootNoise mixes Dirichlet noise into the legal entries of the root
// policy and renormalizes over the legal moves. The noise keeps self-play
// exploratory even when the evaluator is already confident.
func (m *MCTS) blendRootNoise(policy []float32, moves []*chess.Move) []float32 {
	alpha := make([]float64, len(moves))
	for i := range alpha {
		alpha[i] = m.DirichletAlpha
	}
	noise := distmv.NewDirichlet(alpha, m.rng).Rand(nil)

	blended := make([]float32, game.NumActions)
	var sum float32
	for i, mv := range moves {
		idx := game.MoveIndex(mv)
		var p float32
		if idx < len(policy) {
			p = policy[idx]
		}
		if math32.IsNaN(p) || p < 0 {
			p = 0
		}
		p = (1-m.DirichletEpsilon)*p + m.DirichletEpsilon*float32(noise[i])
		blended[idx] = p
		sum += p
	}
	if sum <= math32.SmallestNonzeroFloat32 {
		uniform := 1 / float32(len(moves))
		for _, mv := range moves {
			blended[game.MoveIndex(mv)] = uniform
		}
		return blended
	}
	for i := range blended {
		blended[i] /= sum
	}
	return blended
}

// policyTarget turns the root visit counts into a probability vector over
// the action space, falling back to uniform over the legal moves if no
// visits were recorded.
func policyTarget(t *tree, moves []*chess.Move) []float32 {
	target := make([]float32, game.NumActions)
	var total float32
	for _, kid := range t.node(rootID).children {
		child := t.node(kid)
		target[game.MoveIndex(child.move)] = float32(child.visits)
		total += float32(child.visits)
	}
	if total <= 0 {
		uniform := 1 / float32(len(moves))
		for _, mv := range moves {
			target[game.MoveIndex(mv)] = uniform
		}
		return target
	}
	for i := range target {
		target[i] /= total
	}
	return target
}

// bestMove returns the legal move with the largest target probability,
// earliest move on ties.
func bestMove(target []float32, moves []*chess.Move) *chess.Move {
	var best *chess.Move
	bestScore := float32(-1)
	for _, mv := range moves {
		if p := target[game.MoveIndex(mv)]; p > bestScore {
			bestScore = p
			best = mv
		}
	}
	return best
}
