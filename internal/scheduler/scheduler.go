package scheduler

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/classforge/timetable-api/pkg/errors"
)

// Options tunes a single search run. Zero values fall back to the defaults
// below, so callers only set what they care about.
type Options struct {
	PopulationSize  int
	MaxGenerations  int
	StagnationLimit int
	MutationRate    float64
	CrossoverRate   float64
	EliteFraction   float64
	TournamentSize  int
	EvalWorkers     int
	Seed            int64
	Weights         Weights
	Logger          *zap.Logger
}

const (
	defaultPopulationSize  = 100
	defaultMaxGenerations  = 300
	defaultStagnationLimit = 60
	defaultMutationRate    = 0.15
	defaultCrossoverRate   = 0.8
	defaultEliteFraction   = 0.1
	defaultTournamentSize  = 5
)

// Scheduler runs a genetic search over candidate weekly timetables for one
// institution's request. A Scheduler is single-use: build one per run.
type Scheduler struct {
	cfg       Config
	courses   []Course
	grid      *SlotGrid
	codec     *codec
	evaluator *evaluator
	breeder   *breeder
	rules     ConstraintSet
	opts      Options
	logger    *zap.Logger
}

// New validates the run configuration and assembles the search machinery.
func New(cfg Config, courses []Course, res Resources, customConstraints []string, opts Options) (*Scheduler, error) {
	if report := Validate(cfg, courses, res, customConstraints); !report.IsValid {
		return nil, appErrors.Clone(appErrors.ErrValidation, report.Errors[0])
	}

	grid, err := NewSlotGrid(cfg)
	if err != nil {
		return nil, err
	}

	applyDefaults(&opts)

	cdc := newCodec(cfg, grid, courses, res)
	rules := ParseConstraints(customConstraints)

	rng := rand.New(rand.NewSource(opts.Seed))

	return &Scheduler{
		cfg:       cfg,
		courses:   courses,
		grid:      grid,
		codec:     cdc,
		evaluator: newEvaluator(cdc, opts.Weights, rules),
		breeder: &breeder{
			codec:          cdc,
			rng:            rng,
			tournamentSize: opts.TournamentSize,
			crossoverRate:  opts.CrossoverRate,
			mutationRate:   opts.MutationRate,
		},
		rules:  rules,
		opts:   opts,
		logger: opts.Logger,
	}, nil
}

func applyDefaults(opts *Options) {
	if opts.PopulationSize <= 0 {
		opts.PopulationSize = defaultPopulationSize
	}
	if opts.MaxGenerations <= 0 {
		opts.MaxGenerations = defaultMaxGenerations
	}
	if opts.StagnationLimit <= 0 {
		opts.StagnationLimit = defaultStagnationLimit
	}
	if opts.MutationRate <= 0 {
		opts.MutationRate = defaultMutationRate
	}
	if opts.CrossoverRate <= 0 {
		opts.CrossoverRate = defaultCrossoverRate
	}
	if opts.EliteFraction <= 0 {
		opts.EliteFraction = defaultEliteFraction
	}
	if opts.TournamentSize <= 0 {
		opts.TournamentSize = defaultTournamentSize
	}
	if opts.EvalWorkers <= 0 {
		opts.EvalWorkers = runtime.NumCPU()
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
}

// Run executes the search until a zero-violation candidate stops improving,
// the generation budget runs out, progress stagnates, or the context is
// cancelled. Cancellation is not an error: the best candidate found so far
// is returned with a degraded outcome.
func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	s.logger.Debug("search starting",
		zap.Int("population", s.opts.PopulationSize),
		zap.Int("requirements", len(s.codec.reqs)),
		zap.Int("workers", s.opts.EvalWorkers))

	pop := s.breeder.seed(s.opts.PopulationSize)
	s.evaluate(pop)
	sortByFitness(pop)

	best := pop[0].clone()
	stale := 0
	generations := 0
	history := make([]float64, 0, s.opts.MaxGenerations)

	for gen := 1; gen <= s.opts.MaxGenerations; gen++ {
		if ctx.Err() != nil {
			s.logger.Warn("search cancelled",
				zap.Int("generation", generations),
				zap.Float64("best_fitness", best.fitness))
			break
		}

		pop = s.nextGeneration(pop)
		s.evaluate(pop)
		sortByFitness(pop)
		generations = gen

		if pop[0].fitness > best.fitness {
			best = pop[0].clone()
			stale = 0
		} else {
			stale++
		}
		history = append(history, best.fitness)

		if gen%50 == 0 {
			s.logger.Debug("generation milestone",
				zap.Int("generation", gen),
				zap.Float64("best_fitness", best.fitness),
				zap.Int("hard_violations", best.hardViolations))
		}

		if stale >= s.opts.StagnationLimit {
			s.logger.Info("search stagnated",
				zap.Int("generation", gen),
				zap.Float64("best_fitness", best.fitness))
			break
		}
	}

	outcome := OutcomeOptimal
	if best.hardViolations > 0 {
		outcome = OutcomeDegraded
	}

	timetable := s.codec.decode(best)
	summary := s.buildSummary(best, timetable)

	s.logger.Info("search finished",
		zap.Int("generations", generations),
		zap.Float64("fitness", best.fitness),
		zap.Int("hard_violations", best.hardViolations),
		zap.String("outcome", string(outcome)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Timetable:          timetable,
		Fitness:            best.fitness,
		Generations:        generations,
		Outcome:            outcome,
		Summary:            summary,
		ConvergenceHistory: history,
	}, nil
}

// nextGeneration carries the elite over unchanged and fills the rest of the
// population with bred offspring.
func (s *Scheduler) nextGeneration(pop []chromosome) []chromosome {
	eliteCount := int(float64(len(pop)) * s.opts.EliteFraction)
	if eliteCount < 1 {
		eliteCount = 1
	}

	next := make([]chromosome, 0, len(pop))
	for i := 0; i < eliteCount; i++ {
		next = append(next, pop[i].clone())
	}

	for len(next) < len(pop) {
		a := s.breeder.selectParent(pop)
		b := s.breeder.selectParent(pop)
		child := s.breeder.crossover(a, b)
		s.breeder.mutate(&child)
		next = append(next, child)
	}

	return next
}

// evaluate scores the whole population with a bounded worker pool. Scoring
// is pure so workers share nothing but the population slice, and the
// generation boundary acts as the synchronization barrier.
func (s *Scheduler) evaluate(pop []chromosome) {
	workers := s.opts.EvalWorkers
	if workers > len(pop) {
		workers = len(pop)
	}
	if workers <= 1 {
		for i := range pop {
			s.evaluator.score(&pop[i])
		}
		return
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				s.evaluator.score(&pop[i])
			}
		}()
	}
	for i := range pop {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
}

func sortByFitness(pop []chromosome) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].fitness > pop[j].fitness
	})
}
