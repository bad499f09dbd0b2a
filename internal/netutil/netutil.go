// Package netutil implements the small fully-connected feed-forward network
// shared by SimpleIntent and EntityEdge: symmetric-sigmoid activations, a
// bit-fail early-stop criterion, and a JSON persistence format.
//
// No FANN binding or equivalent small-MLP library is available to this
// module, so this is a direct, from-scratch implementation rather than a
// wrapped third-party net — see DESIGN.md for why.
package netutil

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
)

// BitFailThreshold is the per-output error tolerance below which an example
// is not counted as a "bit fail" for early-stopping purposes.
const BitFailThreshold = 0.1

// steepness matches FANN's default sigmoid_symmetric steepness.
const steepness = 0.5

// Network is a fully-connected feed-forward network with one hidden layer,
// symmetric-sigmoid ("tanh"-shaped) activations on both hidden and output
// layers.
type Network struct {
	sizes   []int // [nInputs, nHidden, nOutputs]
	weights [][][]float64
	rng     *rand.Rand
}

// New builds a fresh network with random small initial weights. sizes must
// have length 3 ([nInputs, nHidden, nOutputs]).
func New(sizes []int) *Network {
	n := &Network{sizes: append([]int{}, sizes...), rng: rand.New(rand.NewSource(1))}
	n.weights = make([][][]float64, len(sizes)-1)
	for l := 0; l < len(sizes)-1; l++ {
		inCount := sizes[l]
		outCount := sizes[l+1]
		layer := make([][]float64, outCount)
		for o := 0; o < outCount; o++ {
			neuron := make([]float64, inCount+1) // last weight is the bias
			for i := range neuron {
				neuron[i] = (n.rng.Float64()*2 - 1) * 0.5
			}
			layer[o] = neuron
		}
		n.weights[l] = layer
	}
	return n
}

func symmetricSigmoid(x float64) float64 {
	return 2.0/(1.0+math.Exp(-2*steepness*x)) - 1.0
}

// derivative of symmetricSigmoid expressed in terms of its own output y.
func symmetricSigmoidDeriv(y float64) float64 {
	return steepness * (1.0 - y*y)
}

// forward runs input through every layer, returning the activations of each
// layer (including the input layer at index 0).
func (n *Network) forward(input []float64) [][]float64 {
	activations := make([][]float64, len(n.sizes))
	activations[0] = input
	cur := input
	for l, layer := range n.weights {
		next := make([]float64, len(layer))
		for o, neuron := range layer {
			sum := neuron[len(neuron)-1] // bias
			for i, w := range neuron[:len(neuron)-1] {
				sum += w * cur[i]
			}
			next[o] = symmetricSigmoid(sum)
		}
		activations[l+1] = next
		cur = next
	}
	return activations
}

// Run returns the network's output for input.
func (n *Network) Run(input []float64) []float64 {
	activations := n.forward(input)
	return activations[len(activations)-1]
}

// Train runs up to maxEpochs of online backpropagation over the given
// input/output pairs, stopping early once the bit-fail count reaches zero.
// It returns the final bit-fail count.
func (n *Network) Train(inputs, outputs [][]float64, maxEpochs int, learningRate float64) int {
	bitFails := n.bitFails(inputs, outputs)
	for epoch := 0; epoch < maxEpochs && bitFails > 0; epoch++ {
		for i := range inputs {
			n.trainExample(inputs[i], outputs[i], learningRate)
		}
		bitFails = n.bitFails(inputs, outputs)
	}
	return bitFails
}

// bitFails counts, across all examples, how many output units differ from
// their target by more than BitFailThreshold.
func (n *Network) bitFails(inputs, outputs [][]float64) int {
	count := 0
	for i := range inputs {
		actual := n.Run(inputs[i])
		for o := range actual {
			if math.Abs(actual[o]-outputs[i][o]) > BitFailThreshold {
				count++
			}
		}
	}
	return count
}

func (n *Network) trainExample(input, target []float64, learningRate float64) {
	activations := n.forward(input)

	// deltas[l] holds the error signal for layer l+1 (n.weights[l]'s output).
	deltas := make([][]float64, len(n.weights))

	outLayer := len(n.weights) - 1
	out := activations[outLayer+1]
	deltas[outLayer] = make([]float64, len(out))
	for o := range out {
		errv := target[o] - out[o]
		deltas[outLayer][o] = errv * symmetricSigmoidDeriv(out[o])
	}

	for l := outLayer - 1; l >= 0; l-- {
		act := activations[l+1]
		nextWeights := n.weights[l+1]
		deltas[l] = make([]float64, len(act))
		for j := range act {
			var sum float64
			for o, neuron := range nextWeights {
				sum += neuron[j] * deltas[l+1][o]
			}
			deltas[l][j] = sum * symmetricSigmoidDeriv(act[j])
		}
	}

	for l, layer := range n.weights {
		in := activations[l]
		for o, neuron := range layer {
			d := deltas[l][o]
			for i := range in {
				neuron[i] += learningRate * d * in[i]
			}
			neuron[len(neuron)-1] += learningRate * d // bias
		}
	}
}

// persisted is the JSON-serializable form of a Network.
type persisted struct {
	Sizes   []int         `json:"sizes"`
	Weights [][][]float64 `json:"weights"`
}

// Marshal encodes the network's architecture and weights as JSON. This is
// the module's own artifact format; it makes no claim of compatibility with
// FANN's native ".net" format.
func (n *Network) Marshal() ([]byte, error) {
	return json.Marshal(persisted{Sizes: n.sizes, Weights: n.weights})
}

// Unmarshal replaces the network's architecture and weights from JSON bytes
// produced by Marshal.
func (n *Network) Unmarshal(data []byte) error {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if len(p.Sizes) != 3 {
		return errors.New("netutil: expected a 3-layer network")
	}
	n.sizes = p.Sizes
	n.weights = p.Weights
	return nil
}

// InputSize returns the configured input width.
func (n *Network) InputSize() int { return n.sizes[0] }

// ResolveConflicts merges training examples with identical input vectors,
// taking the per-position maximum of their targets so a positive example
// always wins over a conflicting negative duplicate. Order of the first
// occurrence of each distinct input is preserved.
func ResolveConflicts(inputs, outputs [][]float64) ([][]float64, [][]float64) {
	order := make([]string, 0, len(inputs))
	merged := make(map[string][]float64)
	inputByKey := make(map[string][]float64)

	for i, inp := range inputs {
		k := vectorKey(inp)
		if out, ok := merged[k]; ok {
			for j := range out {
				if outputs[i][j] > out[j] {
					out[j] = outputs[i][j]
				}
			}
			continue
		}
		merged[k] = append([]float64{}, outputs[i]...)
		inputByKey[k] = inp
		order = append(order, k)
	}

	resolvedIn := make([][]float64, 0, len(order))
	resolvedOut := make([][]float64, 0, len(order))
	for _, k := range order {
		resolvedIn = append(resolvedIn, inputByKey[k])
		resolvedOut = append(resolvedOut, merged[k])
	}
	return resolvedIn, resolvedOut
}

func vectorKey(v []float64) string {
	b := make([]byte, 0, len(v)*8)
	for _, x := range v {
		bits := math.Float64bits(x)
		b = append(b,
			byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
			byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56))
	}
	return string(b)
}
