package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraintsRecognizesUnavailability(t *testing.T) {
	set := ParseConstraints([]string{
		"Dr. Smith not available on Monday",
		"Prof. Jones is NOT AVAILABLE ON friday",
	})

	require.Len(t, set.Unavailability, 2)
	assert.Equal(t, TeacherUnavailability{Teacher: "Dr. Smith", Day: "Monday"}, set.Unavailability[0])
	assert.Equal(t, TeacherUnavailability{Teacher: "Prof. Jones", Day: "Friday"}, set.Unavailability[1])
	assert.Empty(t, set.Notes)
}

func TestParseConstraintsKeepsUnrecognizedAsNotes(t *testing.T) {
	set := ParseConstraints([]string{
		"prefer morning sessions for math",
		"not available on someday", // no teacher, no weekday
		"   ",
	})

	assert.Empty(t, set.Unavailability)
	require.Len(t, set.Notes, 2)
	assert.Equal(t, "prefer morning sessions for math", set.Notes[0])
}

func TestUnavailableOnMatchesCaseInsensitively(t *testing.T) {
	set := ParseConstraints([]string{"Dr. Smith not available on Monday"})

	assert.True(t, set.UnavailableOn("dr. smith", "MONDAY"))
	assert.False(t, set.UnavailableOn("Dr. Smith", "Tuesday"))
	assert.False(t, set.UnavailableOn("Dr. Jones", "Monday"))
}
