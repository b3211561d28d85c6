package ml

import (
	"context"
	"fmt"
)

type nodeJSON struct {
	Value     []float64 `json:"value"`
	Threshold float64   `json:"threshold"`
	Feature   int       `json:"feature"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
}

type treeJSON struct {
	Nodes []nodeJSON `json:"nodes"`
}

type node struct {
	value     [2]float64
	threshold float64
	feature   int
	left      int
	right     int
}

func (n node) leaf() bool { return n.left < 0 && n.right < 0 }

// RandomForest averages the class distributions of its trees' leaves.
type RandomForest struct {
	trees [][]node
	n     int
}

func newRandomForest(trees []treeJSON, n int) (*RandomForest, error) {
	if n <= 0 {
		return nil, fmt.Errorf("n_features must be positive, got %d", n)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("random forest has no trees")
	}

	f := &RandomForest{trees: make([][]node, len(trees)), n: n}
	for ti, t := range trees {
		if len(t.Nodes) == 0 {
			return nil, fmt.Errorf("tree %d has no nodes", ti)
		}
		nodes := make([]node, len(t.Nodes))
		for ni, nj := range t.Nodes {
			nd, err := buildNode(nj, len(t.Nodes), n)
			if err != nil {
				return nil, fmt.Errorf("tree %d node %d: %w", ti, ni, err)
			}
			nodes[ni] = nd
		}
		f.trees[ti] = nodes
	}
	return f, nil
}

func buildNode(nj nodeJSON, size, n int) (node, error) {
	nd := node{threshold: nj.Threshold, feature: nj.Feature, left: nj.Left, right: nj.Right}
	if nd.leaf() {
		if len(nj.Value) != 2 {
			return node{}, fmt.Errorf("leaf must have 2 class values, got %d", len(nj.Value))
		}
		total := nj.Value[0] + nj.Value[1]
		if total <= 0 {
			return node{}, fmt.Errorf("leaf has no samples")
		}
		nd.value = [2]float64{nj.Value[0] / total, nj.Value[1] / total}
		return nd, nil
	}
	if nd.feature < 0 || nd.feature >= n {
		return node{}, fmt.Errorf("feature index %d out of range", nd.feature)
	}
	if nd.left < 0 || nd.left >= size || nd.right < 0 || nd.right >= size {
		return node{}, fmt.Errorf("child index out of range")
	}
	return nd, nil
}

func (f *RandomForest) PredictProba(ctx context.Context, vector []float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkFeatures(vector, f.n); err != nil {
		return nil, err
	}

	var sum [2]float64
	for ti, nodes := range f.trees {
		leaf, err := walk(nodes, vector)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		sum[0] += leaf.value[0]
		sum[1] += leaf.value[1]
	}
	k := float64(len(f.trees))
	return []float64{sum[0] / k, sum[1] / k}, nil
}

func walk(nodes []node, vector []float64) (node, error) {
	i := 0
	for steps := 0; steps <= len(nodes); steps++ {
		nd := nodes[i]
		if nd.leaf() {
			return nd, nil
		}
		if vector[nd.feature] <= nd.threshold {
			i = nd.left
		} else {
			i = nd.right
		}
	}
	return node{}, fmt.Errorf("cycle detected")
}

func (f *RandomForest) NumFeatures() int { return f.n }
func (f *RandomForest) Type() string     { return ModelTypeRandomForest }
