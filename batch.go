package chessbrain

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/lidiya207/chessbrain/game"
)

// PrepareExamples shuffles the corpus and packs whole batches into dense
// tensors for an external trainer: inputs of shape (N, planes, 8, 8),
// policy targets of shape (N, actions) and values of shape (N,), where N is
// a multiple of batchSize. Examples beyond the last whole batch are dropped.
func PrepareExamples(examples []Example, batchSize int) (xs, policies, values *tensor.Dense, batches int, err error) {
	if batchSize < 1 {
		return nil, nil, nil, 0, errors.Errorf("batch size %d must be positive", batchSize)
	}
	ShuffleExamples(examples)

	batches = len(examples) / batchSize
	if batches == 0 {
		return nil, nil, nil, 0, errors.Errorf("%d examples cannot fill a batch of %d", len(examples), batchSize)
	}
	total := batches * batchSize

	xsBacking := make([]float32, 0, total*game.EncodedSize)
	policiesBacking := make([]float32, 0, total*game.NumActions)
	valuesBacking := make([]float32, 0, total)
	for _, ex := range examples[:total] {
		xsBacking = append(xsBacking, ex.Board...)
		policiesBacking = append(policiesBacking, ex.Policy...)
		valuesBacking = append(valuesBacking, ex.Value)
	}

	xs = tensor.New(tensor.WithBacking(xsBacking),
		tensor.WithShape(total, game.NumPlanes, game.RowNum, game.ColNum))
	policies = tensor.New(tensor.WithBacking(policiesBacking),
		tensor.WithShape(total, game.NumActions))
	values = tensor.New(tensor.WithBacking(valuesBacking),
		tensor.WithShape(total))
	return xs, policies, values, batches, nil
}

// ShuffleExamples permutes the corpus in place.
func ShuffleExamples(examples []Example) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})
}
