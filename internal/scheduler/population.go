package scheduler

import (
	"math/rand"
)

// breeder owns the genetic operators. All randomness flows through the
// injected rng so a fixed seed reproduces the full run.
type breeder struct {
	codec          *codec
	rng            *rand.Rand
	tournamentSize int
	crossoverRate  float64
	mutationRate   float64
}

// seed builds the initial random population.
func (b *breeder) seed(size int) []chromosome {
	pop := make([]chromosome, size)
	for i := range pop {
		pop[i] = b.codec.encode(b.rng)
	}
	return pop
}

// selectParent runs a k-way tournament over the scored population.
func (b *breeder) selectParent(pop []chromosome) chromosome {
	best := pop[b.rng.Intn(len(pop))]
	for i := 1; i < b.tournamentSize; i++ {
		challenger := pop[b.rng.Intn(len(pop))]
		if challenger.fitness > best.fitness {
			best = challenger
		}
	}
	return best
}

// crossover mixes two parents at a single cut point, then repairs any gene
// whose session no longer fits its day window.
func (b *breeder) crossover(a, c chromosome) chromosome {
	child := a.clone()
	if len(child.genes) > 1 && b.rng.Float64() < b.crossoverRate {
		cut := 1 + b.rng.Intn(len(child.genes)-1)
		copy(child.genes[cut:], c.genes[cut:])
	}

	for i := range child.genes {
		if !b.codec.validGene(child.genes[i], b.codec.reqs[i]) {
			child.genes[i] = b.codec.randomGene(b.rng, b.codec.reqs[i])
		}
	}

	child.fitness = 0
	child.hardViolations = 0
	return child
}

// mutate re-randomizes each gene independently at the mutation rate.
func (b *breeder) mutate(ch *chromosome) {
	for i := range ch.genes {
		if b.rng.Float64() < b.mutationRate {
			ch.genes[i] = b.codec.randomGene(b.rng, b.codec.reqs[i])
		}
	}
}
