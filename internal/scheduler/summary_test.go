package scheduler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCountsLabBlocksOnce(t *testing.T) {
	courses := []Course{
		{Code: "CHEM1L", Name: "Chemistry Lab", Teacher: "Dr. Brown", LecturesPerWeek: 2, Type: CourseTypeLab, LabDuration: 2},
	}
	sched, err := New(defaultTestConfig(), courses, Resources{Classrooms: 1, Labs: 2}, nil, testOptions(17))
	require.NoError(t, err)

	result, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeOptimal, result.Outcome)

	completion := result.Summary.CoursesCompletion["CHEM1L"]
	assert.Equal(t, 2, completion.Scheduled, "two lab blocks, not four slot parts")
	assert.Equal(t, 2, completion.Required)
	assert.Equal(t, 2, result.Summary.TotalClassesScheduled)

	// Workload and utilization count occupied slots, so each block adds two.
	assert.Equal(t, 4, result.Summary.TeacherWorkload["Dr. Brown"])
}

func TestSummaryTracksWorkloadAndUtilization(t *testing.T) {
	sched, err := New(defaultTestConfig(), testCourses(), Resources{Classrooms: 3, Labs: 2}, nil, testOptions(42))
	require.NoError(t, err)

	result, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeOptimal, result.Outcome)

	assert.Equal(t, 3, result.Summary.TeacherWorkload["Dr. Smith"])
	assert.Equal(t, 2, result.Summary.TeacherWorkload["Dr. Jones"])
	assert.Equal(t, 2, result.Summary.TeacherWorkload["Dr. Brown"])

	slotTotal := 0
	for _, used := range result.Summary.RoomUtilization {
		slotTotal += used
	}
	assert.Equal(t, 7, slotTotal, "3 + 2 lecture slots plus a two-slot lab block")
}

func TestSummaryRecommendsFixesForDegradedRuns(t *testing.T) {
	// Six sessions for one teacher on a five-slot day pass the capacity
	// check (two classrooms) but force a teacher conflict the search can
	// never remove.
	cfg := defaultTestConfig()
	cfg.WorkingDays = []string{"Monday"}
	courses := []Course{
		{Code: "MATH101", Name: "Mathematics", Teacher: "Dr. Smith", LecturesPerWeek: 6, Type: CourseTypeLecture},
	}
	sched, err := New(cfg, courses, Resources{Classrooms: 2, Labs: 0}, nil, Options{
		PopulationSize: 10,
		MaxGenerations: 5,
		Seed:           3,
	})
	require.NoError(t, err)

	result, err := sched.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeDegraded, result.Outcome)
	assert.NotEmpty(t, result.Summary.ConstraintViolations)
	require.NotEmpty(t, result.Summary.Recommendations)
	joined := strings.Join(result.Summary.Recommendations, "\n")
	assert.Contains(t, joined, "conflicts remain unresolved")
}

func TestSummaryCarriesAdvisoryNotes(t *testing.T) {
	constraints := []string{"prefer morning sessions for math"}
	sched, err := New(defaultTestConfig(), testCourses(), Resources{Classrooms: 3, Labs: 2}, constraints, testOptions(42))
	require.NoError(t, err)

	result, err := sched.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Summary.AdvisoryNotes, 1)
	assert.Equal(t, "prefer morning sessions for math", result.Summary.AdvisoryNotes[0])
}
