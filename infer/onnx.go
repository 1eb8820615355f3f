package infer

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/lidiya207/chessbrain/game"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// OnnxClient serves policy/value inference from an exported ONNX network.
// The model takes a single (planes, 8, 8) input named "input" and produces
// a 4096-wide "policy" head and a scalar "value" head.
type OnnxClient struct {
	mu      sync.Mutex // the ort session is not safe for concurrent Run calls
	session *ort.DynamicAdvancedSession
}

// NewOnnxClient loads the model at modelPath. The runtime shared library
// location can be overridden with ORT_SHARED_LIBRARY_PATH.
func NewOnnxClient(modelPath string) (*OnnxClient, error) {
	if p := os.Getenv("ORT_SHARED_LIBRARY_PATH"); p != "" {
		ort.SetSharedLibraryPath(p)
	}
	ortInitOnce.Do(func() { ortInitErr = ort.InitializeEnvironment() })
	if ortInitErr != nil {
		return nil, errors.Wrap(ortInitErr, "initializing onnx runtime")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "creating session options")
	}
	defer options.Destroy()

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"input"}, []string{"policy", "value"}, options)
	if err != nil {
		return nil, errors.Wrapf(err, "loading model %s", modelPath)
	}
	return &OnnxClient{session: session}, nil
}

// Infer implements mcts.Inferencer. A failed inference surfaces as a
// uniform evaluation so a search never dies mid-simulation.
func (c *OnnxClient) Infer(pos *game.Position) ([]float32, float32) {
	policy, value, err := c.run(game.Encode(pos))
	if err != nil {
		log.Error().Err(err).Msg("onnx inference failed, falling back to uniform")
		return Uniform{}.Infer(pos)
	}
	return policy, value
}

func (c *OnnxClient) run(input []float32) ([]float32, float32, error) {
	inputTensor, err := ort.NewTensor(
		ort.NewShape(1, game.NumPlanes, game.RowNum, game.ColNum), input)
	if err != nil {
		return nil, 0, errors.Wrap(err, "creating input tensor")
	}
	defer inputTensor.Destroy()

	policyTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, game.NumActions))
	if err != nil {
		return nil, 0, errors.Wrap(err, "creating policy tensor")
	}
	defer policyTensor.Destroy()

	valueTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return nil, 0, errors.Wrap(err, "creating value tensor")
	}
	defer valueTensor.Destroy()

	c.mu.Lock()
	err = c.session.Run([]ort.Value{inputTensor}, []ort.Value{policyTensor, valueTensor})
	c.mu.Unlock()
	if err != nil {
		return nil, 0, errors.Wrap(err, "running inference")
	}

	policy := make([]float32, game.NumActions)
	copy(policy, policyTensor.GetData())
	return policy, valueTensor.GetData()[0], nil
}

// Close releases the underlying session.
func (c *OnnxClient) Close() error {
	return c.session.Destroy()
}
