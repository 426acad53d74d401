package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLectureCodec(t *testing.T) *codec {
	t.Helper()
	courses := []Course{
		{Code: "MATH101", Name: "Mathematics", Teacher: "Dr. Smith", LecturesPerWeek: 1, Type: CourseTypeLecture},
		{Code: "PHY101", Name: "Physics", Teacher: "Dr. Jones", LecturesPerWeek: 1, Type: CourseTypeLecture},
	}
	return newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 2, Labs: 0})
}

func TestScoreRewardsConflictFreeCandidate(t *testing.T) {
	cdc := twoLectureCodec(t)
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	ch := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 1, slot: 1, room: 1},
	}}
	ev.score(&ch)

	assert.Zero(t, ch.hardViolations)
	assert.Greater(t, ch.fitness, DefaultWeights().BaseScore)
}

func TestScorePenalizesRoomDoubleBooking(t *testing.T) {
	cdc := twoLectureCodec(t)
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	clean := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 0, slot: 1, room: 0},
	}}
	clashing := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 0, slot: 0, room: 0},
	}}
	ev.score(&clean)
	ev.score(&clashing)

	assert.Zero(t, clean.hardViolations)
	assert.Equal(t, 1, clashing.hardViolations)
	assert.Less(t, clashing.fitness, clean.fitness)
}

func TestScorePenalizesTeacherDoubleBooking(t *testing.T) {
	courses := []Course{
		{Code: "MATH101", Name: "Mathematics", Teacher: "Dr. Smith", LecturesPerWeek: 2, Type: CourseTypeLecture},
	}
	cdc := newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 2, Labs: 0})
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	// Same teacher, same slot, different rooms.
	ch := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 0, slot: 0, room: 1},
	}}
	ev.score(&ch)

	assert.Equal(t, 1, ch.hardViolations)
}

func TestScorePenalizesUnavailableDay(t *testing.T) {
	cdc := twoLectureCodec(t)
	rules := ParseConstraints([]string{"Dr. Smith not available on Monday"})
	ev := newEvaluator(cdc, DefaultWeights(), rules)

	onMonday := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 1, slot: 1, room: 1},
	}}
	offMonday := chromosome{genes: []gene{
		{day: 2, slot: 0, room: 0},
		{day: 1, slot: 1, room: 1},
	}}
	ev.score(&onMonday)
	ev.score(&offMonday)

	assert.Equal(t, 1, onMonday.hardViolations)
	assert.Zero(t, offMonday.hardViolations)
	assert.Less(t, onMonday.fitness, offMonday.fitness)
}

func TestScorePrefersSpreadOverClustering(t *testing.T) {
	courses := []Course{
		{Code: "MATH101", Name: "Mathematics", Teacher: "Dr. Smith", LecturesPerWeek: 3, Type: CourseTypeLecture},
	}
	cdc := newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 3, Labs: 0})
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	spread := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 1, slot: 0, room: 0},
		{day: 2, slot: 0, room: 0},
	}}
	clustered := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 0, slot: 1, room: 0},
		{day: 0, slot: 2, room: 0},
	}}
	ev.score(&spread)
	ev.score(&clustered)

	assert.Zero(t, spread.hardViolations)
	assert.Zero(t, clustered.hardViolations)
	assert.Greater(t, spread.fitness, clustered.fitness)
}

func TestScoreCountsLabSpanCollisions(t *testing.T) {
	courses := []Course{
		{Code: "CHEM1L", Name: "Chemistry Lab", Teacher: "Dr. Brown", LecturesPerWeek: 1, Type: CourseTypeLab, LabDuration: 2},
		{Code: "BIO1L", Name: "Biology Lab", Teacher: "Dr. Green", LecturesPerWeek: 1, Type: CourseTypeLab, LabDuration: 2},
	}
	cdc := newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 1, Labs: 1})
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	// Both labs in Lab 1 with overlapping spans: slots 0-1 and 1-2.
	ch := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 0, slot: 1, room: 0},
	}}
	ev.score(&ch)

	assert.Equal(t, 1, ch.hardViolations)
}

func TestViolationsDescribeConflicts(t *testing.T) {
	cdc := twoLectureCodec(t)
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	ch := chromosome{genes: []gene{
		{day: 0, slot: 0, room: 0},
		{day: 0, slot: 0, room: 0},
	}}
	found := ev.violations(ch)

	require.Len(t, found, 1)
	assert.Contains(t, found[0], "Room 1")
	assert.Contains(t, found[0], "double-booked")
	assert.Contains(t, found[0], "Monday")
}

func TestScoreClampsAtZero(t *testing.T) {
	courses := []Course{
		{Code: "MATH101", Name: "Mathematics", Teacher: "Dr. Smith", LecturesPerWeek: 10, Type: CourseTypeLecture},
	}
	cdc := newTestCodec(t, defaultTestConfig(), courses, Resources{Classrooms: 1, Labs: 0})
	ev := newEvaluator(cdc, DefaultWeights(), ConstraintSet{})

	// Every session piled on the identical slot: nine conflicts for the
	// teacher plus nine for the room dwarf the base score.
	genes := make([]gene, 10)
	ch := chromosome{genes: genes}
	ev.score(&ch)

	assert.Equal(t, 18, ch.hardViolations)
	assert.Zero(t, ch.fitness)
}
