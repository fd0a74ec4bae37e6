package predict

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// ForestConfig controls random forest training.
type ForestConfig struct {
	Trees int
	Seed  uint64

	// MinSamplesSplit is the smallest node that may be split further.
	MinSamplesSplit int
	// MaxDepth limits tree depth; 0 means unlimited.
	MaxDepth int
}

// DefaultForestConfig is 100 fully grown trees with seed 42.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, Seed: 42, MinSamplesSplit: 2}
}

// Forest is a bagged ensemble of regression trees. Its prediction is the
// mean of the tree predictions.
type Forest struct {
	trees    []*treeNode
	features int
}

type treeNode struct {
	// leaf
	value float64
	leaf  bool

	// split: samples with x[feature] <= threshold go left
	feature     int
	threshold   float64
	left, right *treeNode
}

// FitForest trains a forest on x, y. Each tree sees a bootstrap sample
// drawn from a generator seeded by cfg.Seed, so training is reproducible.
func FitForest(x [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	if len(x) == 0 {
		return nil, ErrNoHistory
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf("%w: %d rows but %d targets", ErrFeatureCount, len(x), len(y))
	}
	p := len(x[0])
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrFeatureCount, i, len(row), p)
		}
	}
	if cfg.Trees <= 0 {
		cfg.Trees = 1
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	f := &Forest{trees: make([]*treeNode, 0, cfg.Trees), features: p}
	for t := 0; t < cfg.Trees; t++ {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = rng.IntN(len(x))
		}
		f.trees = append(f.trees, growTree(x, y, sample, 0, cfg, rng))
	}
	return f, nil
}

// Predict averages the trees' predictions for features.
func (f *Forest) Predict(features []float64) (float64, error) {
	if len(features) != f.features {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), f.features)
	}
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(features)
	}
	return sum / float64(len(f.trees)), nil
}

// Size is the number of trees.
func (f *Forest) Size() int {
	return len(f.trees)
}

func (n *treeNode) predict(features []float64) float64 {
	for !n.leaf {
		if features[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func growTree(x [][]float64, y []float64, idx []int, depth int, cfg ForestConfig, rng *rand.Rand) *treeNode {
	mean := meanOf(y, idx)
	if len(idx) < cfg.MinSamplesSplit || (cfg.MaxDepth > 0 && depth >= cfg.MaxDepth) {
		return &treeNode{leaf: true, value: mean}
	}

	parentSSE := sseOf(y, idx, mean)
	if parentSSE == 0 {
		return &treeNode{leaf: true, value: mean}
	}

	bestFeature, bestThreshold, bestSSE := -1, 0.0, parentSSE
	// Visit features in random order so equally good splits are not
	// always resolved in favor of the first column.
	for _, j := range rng.Perm(len(x[0])) {
		threshold, sse, ok := bestSplit(x, y, idx, j)
		if ok && sse < bestSSE {
			bestFeature, bestThreshold, bestSSE = j, threshold, sse
		}
	}
	if bestFeature < 0 {
		return &treeNode{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      growTree(x, y, left, depth+1, cfg, rng),
		right:     growTree(x, y, right, depth+1, cfg, rng),
	}
}

// bestSplit finds the threshold on feature j minimizing the summed squared
// error of the two children. Thresholds are midpoints between distinct values.
func bestSplit(x [][]float64, y []float64, idx []int, j int) (float64, float64, bool) {
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.SliceStable(sorted, func(a, b int) bool {
		return x[sorted[a]][j] < x[sorted[b]][j]
	})

	var totalSum, totalSq float64
	for _, i := range sorted {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}

	var leftSum, leftSq float64
	best, bestThreshold, found := math.Inf(1), 0.0, false
	for k := 0; k < len(sorted)-1; k++ {
		yi := y[sorted[k]]
		leftSum += yi
		leftSq += yi * yi

		cur, next := x[sorted[k]][j], x[sorted[k+1]][j]
		if cur == next {
			continue
		}
		nl := float64(k + 1)
		nr := float64(len(sorted)) - nl
		rightSum := totalSum - leftSum
		rightSq := totalSq - leftSq
		sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
		if sse < best {
			best, bestThreshold, found = sse, (cur+next)/2, true
		}
	}
	return bestThreshold, best, found
}

func meanOf(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sseOf(y []float64, idx []int, mean float64) float64 {
	var sse float64
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return sse
}

// holdOut splits n row indices into train and test sets using a shuffle
// seeded by seed. The test set has ceil(n*testFraction) rows but never
// takes every row.
func holdOut(n int, testFraction float64, seed uint64) (train, test []int) {
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	k := int(math.Ceil(float64(n) * testFraction))
	if k >= n {
		k = n - 1
	}
	if k < 0 {
		k = 0
	}
	return perm[k:], perm[:k]
}
