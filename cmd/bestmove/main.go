// Command bestmove runs a single search from a FEN position and prints the
// chosen move in UCI notation.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lidiya207/chessbrain/game"
	"github.com/lidiya207/chessbrain/infer"
	"github.com/lidiya207/chessbrain/mcts"
)

var (
	fen       = flag.String("fen", "", "position to search; starting position when empty")
	modelPath = flag.String("model", "", "path to the ONNX network; uniform evaluator when empty")
	numSims   = flag.Int("simulations", 800, "MCTS simulations")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	pos := game.NewPosition()
	if *fen != "" {
		p, err := game.PositionFromFEN(*fen)
		if err != nil {
			log.Fatal().Err(err).Msg("parsing position")
		}
		pos = p
	}

	var nn mcts.Inferencer = infer.Uniform{}
	if *modelPath != "" {
		client, err := infer.NewOnnxClient(*modelPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading model")
		}
		defer client.Close()
		nn = client
	}

	conf := mcts.DefaultConfig()
	conf.NumSimulations = *numSims
	// play the strongest move, not a sampled one
	conf.Temperature = 0

	move, _ := mcts.New(conf, nn).Search(pos)
	if move == nil {
		fmt.Println("(no legal moves)")
		return
	}
	fmt.Println(move.String())
}
