package chessbrain

// Example is one training example produced by self play: the encoded board
// that was searched, the visit-count policy target over the action space,
// and the final game outcome from the mover's perspective. Value is only
// filled in once the game has ended.
type Example struct {
	Board  []float32
	Policy []float32
	Value  float32
}

// Store persists a batch of training examples. Self play treats persistence
// as fire-and-forget: failures are logged, never propagated into the game
// loop.
type Store interface {
	Save(examples []Example) error
}
