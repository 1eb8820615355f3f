// Package infer provides evaluator implementations behind the search's
// Inferencer capability: an ONNX Runtime client for trained networks and a
// uniform baseline for bootstrapping.
package infer

import "github.com/lidiya207/chessbrain/game"

// Uniform is the untrained baseline evaluator: equal probability on every
// action and a neutral value. It bootstraps the very first self-play
// iteration, before any network exists.
type Uniform struct{}

// Infer implements mcts.Inferencer.
func (Uniform) Infer(*game.Position) ([]float32, float32) {
	policy := make([]float32, game.NumActions)
	p := 1 / float32(game.NumActions)
	for i := range policy {
		policy[i] = p
	}
	return policy, 0
}
