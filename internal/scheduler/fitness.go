package scheduler

import (
	"fmt"
)

// Weights tunes the fitness function. Hard penalties must dwarf soft ones so
// the search always prefers removing a conflict over polishing quality.
type Weights struct {
	BaseScore          float64
	HardPenalty        float64
	UnavailablePenalty float64
	SpreadReward       float64
	ClusterPenalty     float64
	DailyLoadCap       int
	DailyLoadPenalty   float64
}

// DefaultWeights returns the tuning used when the caller supplies none.
func DefaultWeights() Weights {
	return Weights{
		BaseScore:          6000,
		HardPenalty:        1000,
		UnavailablePenalty: 800,
		SpreadReward:       50,
		ClusterPenalty:     30,
		DailyLoadCap:       6,
		DailyLoadPenalty:   40,
	}
}

// evaluator scores candidates directly from their genes. Scoring is pure:
// no shared state, no randomness, so it parallelizes and reproduces freely.
type evaluator struct {
	codec   *codec
	weights Weights
	rules   ConstraintSet
}

func newEvaluator(c *codec, w Weights, rules ConstraintSet) *evaluator {
	return &evaluator{codec: c, weights: w, rules: rules}
}

type slotClaim struct {
	day  int
	slot int
}

// score computes and caches fitness plus the hard-violation count on the
// candidate. Fitness is clamped at zero.
func (e *evaluator) score(ch *chromosome) {
	fitness := e.weights.BaseScore
	hard := 0

	teacherBusy := make(map[string]map[slotClaim]bool)
	roomBusy := make(map[string]map[slotClaim]bool)

	for i, g := range ch.genes {
		req := e.codec.reqs[i]

		// Window overflow: breeding repairs these, but a corrupted gene must
		// still be scored rather than crash the run.
		if !e.codec.validGene(g, req) {
			hard++
			fitness -= e.weights.HardPenalty
			continue
		}

		day := e.codec.cfg.WorkingDays[g.day]
		room := e.codec.rooms.name(req, g.room)

		if e.rules.UnavailableOn(req.course.Teacher, day) {
			fitness -= e.weights.UnavailablePenalty
			hard++
		}

		for part := 0; part < req.span; part++ {
			claim := slotClaim{day: g.day, slot: g.slot + part}

			if teacherBusy[req.course.Teacher] == nil {
				teacherBusy[req.course.Teacher] = make(map[slotClaim]bool)
			}
			if teacherBusy[req.course.Teacher][claim] {
				hard++
				fitness -= e.weights.HardPenalty
			}
			teacherBusy[req.course.Teacher][claim] = true

			if roomBusy[room] == nil {
				roomBusy[room] = make(map[slotClaim]bool)
			}
			if roomBusy[room][claim] {
				hard++
				fitness -= e.weights.HardPenalty
			}
			roomBusy[room][claim] = true
		}
	}

	fitness += e.softScore(*ch)

	if fitness < 0 {
		fitness = 0
	}
	ch.fitness = fitness
	ch.hardViolations = hard
}

// softScore rewards spreading a course across the week and penalizes piling
// a teacher's day past the load cap.
func (e *evaluator) softScore(ch chromosome) float64 {
	courseDays := make(map[string]map[int]bool)
	courseSessions := make(map[string]int)
	teacherDaily := make(map[string]map[int]int)

	for i, g := range ch.genes {
		req := e.codec.reqs[i]
		if !e.codec.validGene(g, req) {
			continue
		}

		if courseDays[req.course.Code] == nil {
			courseDays[req.course.Code] = make(map[int]bool)
		}
		courseDays[req.course.Code][g.day] = true
		courseSessions[req.course.Code]++

		if teacherDaily[req.course.Teacher] == nil {
			teacherDaily[req.course.Teacher] = make(map[int]int)
		}
		teacherDaily[req.course.Teacher][g.day]++
	}

	var score float64
	for code, days := range courseDays {
		distinct := len(days)
		score += e.weights.SpreadReward * float64(distinct)
		if clustered := courseSessions[code] - distinct; clustered > 0 {
			score -= e.weights.ClusterPenalty * float64(clustered)
		}
	}
	for _, daily := range teacherDaily {
		for _, sessions := range daily {
			if over := sessions - e.weights.DailyLoadCap; over > 0 {
				score -= e.weights.DailyLoadPenalty * float64(over)
			}
		}
	}

	return score
}

// violations re-scans a candidate and renders every hard conflict as a
// human-readable line for the run summary.
func (e *evaluator) violations(ch chromosome) []string {
	found := []string{}

	teacherBusy := make(map[string]map[slotClaim]string)
	roomBusy := make(map[string]map[slotClaim]string)

	for i, g := range ch.genes {
		req := e.codec.reqs[i]

		if !e.codec.validGene(g, req) {
			found = append(found,
				fmt.Sprintf("%s session does not fit inside a single day", req.course.Code))
			continue
		}

		day := e.codec.cfg.WorkingDays[g.day]
		room := e.codec.rooms.name(req, g.room)

		if e.rules.UnavailableOn(req.course.Teacher, day) {
			found = append(found,
				fmt.Sprintf("%s is scheduled on %s despite being unavailable", req.course.Teacher, day))
		}

		for part := 0; part < req.span; part++ {
			claim := slotClaim{day: g.day, slot: g.slot + part}
			at := e.codec.grid.Times[g.slot+part]

			if teacherBusy[req.course.Teacher] == nil {
				teacherBusy[req.course.Teacher] = make(map[slotClaim]string)
			}
			if other, clash := teacherBusy[req.course.Teacher][claim]; clash {
				found = append(found,
					fmt.Sprintf("%s teaches %s and %s at the same time (%s %s)",
						req.course.Teacher, other, req.course.Code, day, at))
			}
			teacherBusy[req.course.Teacher][claim] = req.course.Code

			if roomBusy[room] == nil {
				roomBusy[room] = make(map[slotClaim]string)
			}
			if other, clash := roomBusy[room][claim]; clash {
				found = append(found,
					fmt.Sprintf("%s is double-booked for %s and %s (%s %s)",
						room, other, req.course.Code, day, at))
			}
			roomBusy[room][claim] = req.course.Code
		}
	}

	return found
}
