package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/gobble/config"
	"github.com/pthm-cable/gobble/game"
)

// FitnessEvaluator plays autopilot matches and scores how far the outcome
// is from the target difficulty.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	target     float64 // wanted mean survival fraction

	mu        sync.Mutex
	lastRate  float64 // win rate from the most recent Evaluate call
	lastSurv  float64 // survival fraction from the most recent Evaluate call
	lastScore float64 // mean final score from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// Last returns the win rate, survival fraction and mean score of the most
// recent evaluation.
func (fe *FitnessEvaluator) Last() (winRate, survival, score float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRate, fe.lastSurv, fe.lastScore
}

// seedResult holds the result of one match.
type seedResult struct {
	won      bool
	survival float64 // fraction of the match survived, 1 when won
	score    int
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is the squared distance between the mean survival fraction and
// the target; survival is smoother than win rate over few seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Recompute()

	// Each match owns its world and RNG, so seeds run in parallel.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runMatch(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	return fe.aggregate(results)
}

func (fe *FitnessEvaluator) aggregate(results []seedResult) float64 {
	var wins, score int
	var survival float64
	for _, r := range results {
		if r.won {
			wins++
		}
		survival += r.survival
		score += r.score
	}
	n := float64(len(results))
	meanSurvival := survival / n

	fe.mu.Lock()
	fe.lastRate = float64(wins) / n
	fe.lastSurv = meanSurvival
	fe.lastScore = float64(score) / n
	fe.mu.Unlock()

	return math.Pow(meanSurvival-fe.target, 2)
}

// runMatch plays one autopilot match to the end.
func (fe *FitnessEvaluator) runMatch(cfg *config.Config, seed int64) seedResult {
	// Matches share cfg read-only.
	m, err := game.NewMatch(cfg, game.Options{Seed: seed})
	if err != nil {
		// Invalid parameter combinations are the worst possible outcome.
		return seedResult{}
	}
	outcome := game.Run(m, game.NewAutopilot(cfg), 0)

	survival := 1.0
	if outcome != game.OutcomeWon {
		survival = float64(m.Tick()) / float64(cfg.Derived.MatchTicks)
	}
	return seedResult{
		won:      outcome == game.OutcomeWon,
		survival: survival,
		score:    m.Score(),
	}
}

// copyConfig returns a copy of the base config that can be mutated freely.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Food.Symbols = append([]string(nil), fe.baseConfig.Food.Symbols...)
	return &cfg
}
