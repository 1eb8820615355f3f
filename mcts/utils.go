package mcts

import "github.com/chewxy/math32"

// zeroTemperature is the threshold below which the transform degenerates to
// a one-hot vector on the argmax instead of dividing by a vanishing T.
const zeroTemperature = 1e-3

// ApplyTemperature sharpens (T < 1) or flattens (T > 1) a probability
// vector by raising each entry to 1/T and renormalizing. T == 1 returns the
// input untouched.
func ApplyTemperature(p []float32, temperature float32) []float32 {
	if temperature == 1 {
		return p
	}
	out := make([]float32, len(p))
	if temperature < zeroTemperature {
		out[argmax(p)] = 1
		return out
	}

	inv := 1 / temperature
	var sum float32
	for i, v := range p {
		out[i] = math32.Pow(v, inv)
		sum += out[i]
	}
	sum += 1e-8
	for i := range out {
		out[i] /= sum
	}
	return out
}

func argmax(a []float32) int {
	var retVal int
	max := math32.Inf(-1)
	for i, v := range a {
		if v > max {
			max = v
			retVal = i
		}
	}
	return retVal
}
