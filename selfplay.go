// Package chessbrain drives self-play games over the MCTS engine and turns
// them into a labeled training corpus for the position evaluator.
package chessbrain

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/lidiya207/chessbrain/game"
	"github.com/lidiya207/chessbrain/mcts"
)

// Config for a self-play run.
type Config struct {
	MCTS mcts.Config
	// MaxPlies caps a game's length; a game that reaches it is scored as a
	// draw for every recorded position.
	MaxPlies int
	// NumGames is the number of games a GenerateGames run plays.
	NumGames int
}

// DefaultConfig mirrors the settings the evaluator is tuned with.
func DefaultConfig() Config {
	return Config{
		MCTS:     mcts.DefaultConfig(),
		MaxPlies: 400,
		NumGames: 100,
	}
}

func (c Config) IsValid() bool {
	return c.MCTS.IsValid() && c.MaxPlies > 0 && c.NumGames > 0
}

// SelfPlay generates training data by playing the engine against itself.
type SelfPlay struct {
	conf    Config
	search  *mcts.MCTS
	store   Store
	logger  zerolog.Logger
	closers []io.Closer
}

// NewSelfPlay wires a self-play driver. store may be nil, in which case the
// generated corpus is only returned, never persisted.
func NewSelfPlay(conf Config, nn mcts.Inferencer, store Store, logger zerolog.Logger, opts ...mcts.Option) *SelfPlay {
	if !conf.IsValid() {
		panic("chessbrain: self-play config is not valid. Unable to proceed")
	}
	s := &SelfPlay{
		conf:   conf,
		search: mcts.New(conf.MCTS, nn, opts...),
		store:  store,
		logger: logger,
	}
	if c, ok := nn.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	if c, ok := store.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	return s
}

// PlayGame plays one game from the starting position and returns the
// labeled examples, one per ply searched. Each example's board and policy
// are recorded before the chosen move is applied.
func (s *SelfPlay) PlayGame() []Example {
	pos := game.NewPosition()

	var examples []Example
	var movers []chess.Color

	for !pos.IsTerminal() && pos.Ply() < s.conf.MaxPlies {
		move, target := s.search.Search(pos)
		if move == nil {
			break
		}
		examples = append(examples, Example{Board: game.Encode(pos), Policy: target})
		movers = append(movers, pos.Turn())

		s.logger.Debug().
			Int("ply", pos.Ply()).
			Str("side", pos.Turn().Name()).
			Str("move", move.String()).
			Msg("self-play move")
		pos = pos.Apply(move)
	}

	result, terminal := pos.Result()
	if !terminal {
		// ran into the ply cap: scored as a draw for everyone
		result = 0
	}
	labelExamples(examples, movers, result, pos.Turn())
	return examples
}

// labelExamples back-fills the outcome of every recorded position: result as
// seen by the side to move at the final position, negated for records where
// the other side was the mover.
func labelExamples(examples []Example, movers []chess.Color, result float32, terminalMover chess.Color) {
	for i := range examples {
		if movers[i] == terminalMover {
			examples[i].Value = result
		} else {
			examples[i].Value = -result
		}
	}
}

// GenerateGames plays n games back to back and concatenates their examples.
// When a store is configured the corpus is handed to it at the end; a
// persistence failure is logged and the corpus still returned.
func (s *SelfPlay) GenerateGames(n int) []Example {
	var all []Example
	for i := 0; i < n; i++ {
		examples := s.PlayGame()
		s.logger.Info().
			Int("game", i).
			Int("positions", len(examples)).
			Msg("self-play game finished")
		all = append(all, examples...)
	}

	if s.store != nil {
		if err := s.store.Save(all); err != nil {
			s.logger.Error().Err(err).Msg("persisting self-play corpus")
		}
	}
	return all
}

// Close releases the closable collaborators (evaluator sessions, stores).
func (s *SelfPlay) Close() error {
	var errs error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
