package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, cfg Config, courses []Course, res Resources) *codec {
	t.Helper()
	grid, err := NewSlotGrid(cfg)
	require.NoError(t, err)
	return newCodec(cfg, grid, courses, res)
}

func TestBuildRequirementsExpandsWeeklyOccurrences(t *testing.T) {
	reqs := buildRequirements(testCourses())

	// 3 + 2 lectures plus one lab block.
	require.Len(t, reqs, 6)
	assert.Equal(t, "MATH101", reqs[0].course.Code)
	assert.Equal(t, 0, reqs[0].occurrence)
	assert.Equal(t, 2, reqs[2].occurrence)
	assert.Equal(t, "PHY101", reqs[3].course.Code)
	assert.Equal(t, "CHEM1L", reqs[5].course.Code)
	assert.Equal(t, 2, reqs[5].span)
}

func TestEncodeStaysInsideBounds(t *testing.T) {
	cdc := newTestCodec(t, defaultTestConfig(), testCourses(), Resources{Classrooms: 3, Labs: 1})
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		ch := cdc.encode(rng)
		require.Len(t, ch.genes, len(cdc.reqs))
		for i, g := range ch.genes {
			assert.GreaterOrEqual(t, g.day, 0)
			assert.Less(t, g.day, len(cdc.cfg.WorkingDays))
			assert.GreaterOrEqual(t, g.room, 0)
			assert.Less(t, g.room, cdc.rooms.count(cdc.reqs[i]))
			assert.True(t, cdc.validGene(g, cdc.reqs[i]), "session must fit its day")
		}
	}
}

func TestDecodeInitializesEverySlot(t *testing.T) {
	cdc := newTestCodec(t, defaultTestConfig(), testCourses(), Resources{Classrooms: 3, Labs: 1})
	rng := rand.New(rand.NewSource(11))

	table := cdc.decode(cdc.encode(rng))

	require.Len(t, table, len(cdc.cfg.WorkingDays))
	for _, day := range cdc.cfg.WorkingDays {
		require.Len(t, table[day], cdc.grid.SlotsPerDay())
		for _, slotTime := range cdc.grid.Times {
			_, exists := table[day][slotTime]
			assert.True(t, exists, "slot %s %s should be present even when free", day, slotTime)
		}
	}
}

func TestDecodeKeepsLabBlocksContiguous(t *testing.T) {
	courses := []Course{
		{Code: "CHEM1L", Name: "Chemistry Lab", Teacher: "Dr. Brown", LecturesPerWeek: 1, Type: CourseTypeLab, LabDuration: 3},
	}
	cdc := newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 1, Labs: 2})
	rng := rand.New(rand.NewSource(23))

	for trial := 0; trial < 20; trial++ {
		ch := cdc.encode(rng)
		table := cdc.decode(ch)

		days := make(map[string]bool)
		var parts []*Occupant
		var partTimes []string
		for _, d := range cdc.cfg.WorkingDays {
			for _, slotTime := range cdc.grid.Times {
				if occ := table[d][slotTime]; occ != nil {
					days[d] = true
					parts = append(parts, occ)
					partTimes = append(partTimes, slotTime)
				}
			}
		}

		require.Len(t, parts, 3, "lab block should occupy exactly three slots")
		assert.Len(t, days, 1, "all parts sit on one day")
		for _, occ := range parts {
			assert.Equal(t, "CHEM1L", occ.CourseCode)
			assert.Equal(t, parts[0].Room, occ.Room, "all parts share a room")
			assert.True(t, occ.IsConsecutive)
			assert.Equal(t, 3, occ.TotalDuration, "duration is the slot count of the whole block")
			assert.Contains(t, occ.SessionPart, "/3")
		}
		assert.Equal(t, "1/3", parts[0].SessionPart)

		// Parts sit in adjacent grid slots on one day.
		startIdx := slotIndex(cdc.grid, partTimes[0])
		for i, slotTime := range partTimes {
			assert.Equal(t, cdc.grid.Times[startIdx+i], slotTime)
		}
	}
}

func TestDecodeLabelsRoomsByPool(t *testing.T) {
	courses := []Course{
		{Code: "MATH101", Name: "Mathematics", Teacher: "Dr. Smith", LecturesPerWeek: 1, Type: CourseTypeLecture},
		{Code: "CHEM1L", Name: "Chemistry Lab", Teacher: "Dr. Brown", LecturesPerWeek: 1, Type: CourseTypeLab, LabDuration: 2},
	}
	cdc := newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 2, Labs: 1})
	rng := rand.New(rand.NewSource(3))

	table := cdc.decode(cdc.encode(rng))
	for _, slots := range table {
		for _, occ := range slots {
			if occ == nil {
				continue
			}
			switch occ.Type {
			case CourseTypeLab:
				assert.Regexp(t, `^Lab \d+$`, occ.Room)
			default:
				assert.Regexp(t, `^Room \d+$`, occ.Room)
			}
		}
	}
}

func slotIndex(grid *SlotGrid, slotTime string) int {
	for i, t := range grid.Times {
		if t == slotTime {
			return i
		}
	}
	return -1
}
