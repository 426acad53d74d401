package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersSlotGrid(t *testing.T) {
	data := NewDataset("Time", "Monday", "Tuesday")
	data.AddRow(map[string]string{"Time": "09:00", "Monday": "MATH101 (Room 1)"})
	data.AddRow(map[string]string{"Time": "09:45", "Tuesday": "PHY201 (Lab 1) [1/2]"})

	payload, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	assert.Equal(t,
		"Time,Monday,Tuesday\n09:00,MATH101 (Room 1),\n09:45,,PHY201 (Lab 1) [1/2]\n",
		string(payload))
}

func TestCSVExporterRejectsHeaderlessDataset(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}
