package scheduler

import (
	"fmt"
	"math/rand"
)

// codec translates between the flat gene representation the search operates
// on and the day/slot timetable the API returns. The requirement list is
// built once per run and fixes the meaning of every gene index.
type codec struct {
	cfg   Config
	grid  *SlotGrid
	res   Resources
	reqs  []requirement
	rooms roomNamer
}

type roomNamer struct {
	classrooms int
	labs       int
}

func (r roomNamer) name(req requirement, room int) string {
	if req.course.Type == CourseTypeLab {
		return fmt.Sprintf("Lab %d", room+1)
	}
	return fmt.Sprintf("Room %d", room+1)
}

func (r roomNamer) count(req requirement) int {
	if req.course.Type == CourseTypeLab {
		return r.labs
	}
	return r.classrooms
}

func newCodec(cfg Config, grid *SlotGrid, courses []Course, res Resources) *codec {
	return &codec{
		cfg:   cfg,
		grid:  grid,
		res:   res,
		reqs:  buildRequirements(courses),
		rooms: roomNamer{classrooms: res.Classrooms, labs: res.Labs},
	}
}

// buildRequirements expands each course into one requirement per weekly
// occurrence, in course definition order so gene indices are stable.
func buildRequirements(courses []Course) []requirement {
	var reqs []requirement
	for _, course := range courses {
		for i := 0; i < course.LecturesPerWeek; i++ {
			reqs = append(reqs, requirement{
				course:     course,
				occurrence: i,
				span:       course.SessionSpan(),
			})
		}
	}
	return reqs
}

// encode builds a fully random candidate. Lab blocks draw their starting
// slot so the whole span fits the day, which keeps contiguity structural.
func (c *codec) encode(rng *rand.Rand) chromosome {
	genes := make([]gene, len(c.reqs))
	for i := range c.reqs {
		genes[i] = c.randomGene(rng, c.reqs[i])
	}
	return chromosome{genes: genes}
}

func (c *codec) randomGene(rng *rand.Rand, req requirement) gene {
	maxStart := c.grid.SlotsPerDay() - req.span
	if maxStart < 0 {
		maxStart = 0
	}

	rooms := c.rooms.count(req)
	if rooms < 1 {
		rooms = 1
	}

	return gene{
		day:  rng.Intn(len(c.cfg.WorkingDays)),
		slot: rng.Intn(maxStart + 1),
		room: rng.Intn(rooms),
	}
}

// validGene reports whether the gene keeps its requirement inside one day.
func (c *codec) validGene(g gene, req requirement) bool {
	return g.slot+req.span <= c.grid.SlotsPerDay()
}

// decode materializes a candidate into a concrete timetable. Placement is
// last-wins on collisions; decode itself never fails, collisions are scored
// by the evaluator against the raw genes instead.
func (c *codec) decode(ch chromosome) Timetable {
	table := make(Timetable, len(c.cfg.WorkingDays))
	for _, day := range c.cfg.WorkingDays {
		table[day] = make(map[string]*Occupant, c.grid.SlotsPerDay())
		for _, t := range c.grid.Times {
			table[day][t] = nil
		}
	}

	for i, g := range ch.genes {
		req := c.reqs[i]
		day := c.cfg.WorkingDays[g.day]

		span := req.span
		if g.slot+span > c.grid.SlotsPerDay() {
			span = c.grid.SlotsPerDay() - g.slot
		}

		for part := 0; part < span; part++ {
			occ := &Occupant{
				CourseCode: req.course.Code,
				CourseName: req.course.Name,
				Teacher:    req.course.Teacher,
				Room:       c.rooms.name(req, g.room),
				Type:       req.course.Type,
			}
			if req.span > 1 {
				occ.IsConsecutive = true
				occ.SessionPart = fmt.Sprintf("%d/%d", part+1, req.span)
				occ.TotalDuration = req.span
			}
			table[day][c.grid.Times[g.slot+part]] = occ
		}
	}

	return table
}
