// Command selfplay generates a self-play training corpus and persists it as
// parquet.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	chessbrain "github.com/lidiya207/chessbrain"
	"github.com/lidiya207/chessbrain/infer"
	"github.com/lidiya207/chessbrain/mcts"
	"github.com/lidiya207/chessbrain/store"
)

var (
	modelPath = flag.String("model", "", "path to the ONNX network; uniform evaluator when empty")
	outDir    = flag.String("out", "data/self_play_games", "directory for the generated corpus")
	numGames  = flag.Int("num_games", 100, "number of self-play games")
	numSims   = flag.Int("simulations", 100, "MCTS simulations per move")
	maxPlies  = flag.Int("max_plies", 400, "plies before a game is scored as a draw")
	debug     = flag.Bool("debug", false, "log every move")
)

func main() {
	flag.Parse()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var nn mcts.Inferencer = infer.Uniform{}
	if *modelPath != "" {
		client, err := infer.NewOnnxClient(*modelPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading model")
		}
		nn = client
	}

	conf := chessbrain.DefaultConfig()
	conf.MCTS.NumSimulations = *numSims
	conf.MaxPlies = *maxPlies
	conf.NumGames = *numGames

	sp := chessbrain.NewSelfPlay(conf, nn, store.ParquetStore{Dir: *outDir}, log.Logger)
	defer func() {
		if err := sp.Close(); err != nil {
			log.Error().Err(err).Msg("closing self play")
		}
	}()

	examples := sp.GenerateGames(conf.NumGames)
	log.Info().
		Int("games", conf.NumGames).
		Int("positions", len(examples)).
		Msg("self-play corpus generated")
}
