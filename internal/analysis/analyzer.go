// Package analysis computes per-trial-type Pearson relationships between
// movement parameters and error measures on a cleaned frame.
package analysis

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"movelab/domain/trial"
	"movelab/internal"
)

// SignificanceAlpha is the fixed p-value threshold for a significant
// pair. It is deliberately not configurable and deliberately not
// corrected for multiple comparisons; this tool is exploratory.
const SignificanceAlpha = 0.05

// Analyzer runs the relationship sweep. Partitions are independent, so
// they are computed concurrently; result ordering stays deterministic.
type Analyzer struct {
	log         *internal.Logger
	parallelism int
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithParallelism bounds the number of concurrent partition workers
func WithParallelism(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.parallelism = n
		}
	}
}

// New creates an analyzer
func New(logger *internal.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &Analyzer{
		log:         logger,
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes a CorrelationResult for every movement variable,
// error variable, and trial-type partition observed in the frame.
// Partition order follows first occurrence in the dataset, not a sort.
// An empty frame yields an empty result set, not an error.
func (a *Analyzer) Analyze(ctx context.Context, f *trial.Frame, s *trial.Schema) (*trial.ResultSet, error) {
	results := trial.NewResultSet()
	if f.IsEmpty() {
		return results, nil
	}

	trialTypes := f.DistinctStrings(s.TrialTypeCol())

	type task struct {
		key       trial.PairKey
		partition *trial.Frame
	}
	var tasks []task
	for _, movVar := range s.MovementCols() {
		for _, errVar := range s.ErrorCols() {
			for _, trialType := range trialTypes {
				tt := trialType
				partition := f.Filter(func(rec trial.Record) bool {
					return rec[s.TrialTypeCol()].String() == tt
				})
				tasks = append(tasks, task{
					key:       trial.PairKey{MovementVar: movVar, ErrorVar: errVar, TrialType: tt},
					partition: partition,
				})
			}
		}
	}

	computed := make([]trial.CorrelationResult, len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i, tk := range tasks {
		i, tk := i, tk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			xs, ys, err := tk.partition.PairedFloats(tk.key.MovementVar, tk.key.ErrorVar)
			if err != nil {
				return err
			}
			computed[i] = pearsonResult(tk.key, xs, ys)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range computed {
		results.Add(r)
	}

	a.log.Debug("relationship sweep produced %d results across %d trial types",
		results.Len(), len(trialTypes))
	return results, nil
}

// pearsonResult computes Pearson's r and its two-sided p-value for one
// partition. Degenerate inputs produce an explicit undefined result.
func pearsonResult(key trial.PairKey, xs, ys []float64) trial.CorrelationResult {
	n := len(xs)
	result := trial.CorrelationResult{PairKey: key, SampleSize: n}

	if n < 2 || stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		result.Undefined = true
		result.Correlation = math.NaN()
		result.PValue = math.NaN()
		return result
	}

	r := stat.Correlation(xs, ys, nil)
	result.Correlation = clamp(r, -1, 1)
	result.PValue = twoSidedPValue(result.Correlation, n)
	return result
}

// twoSidedPValue converts r to the two-tailed significance probability
// via the t transform: t = r * sqrt((n-2)/(1-r^2)), df = n-2.
func twoSidedPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		// Two points always correlate perfectly; nothing to reject
		return 1
	}
	if math.Abs(r) >= 1 {
		// Perfect correlation degenerates the t transform
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))
	return clamp(p, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
