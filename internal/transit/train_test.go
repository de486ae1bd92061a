package transit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrain(t *testing.T) {
	t.Run("parses a well-formed record", func(t *testing.T) {
		train, err := NewTrain("pass-1", pass("E", "De Akkers", 10*time.Minute, 2*time.Minute))
		require.NoError(t, err)

		assert.Equal(t, "pass-1", train.ID())
		assert.Equal(t, "E", train.Line())
		assert.Equal(t, "De Akkers", train.Destination())
		assert.Equal(t, baseTime.Add(12*time.Minute), train.ArrivalTime())
		assert.Equal(t, baseTime.Add(10*time.Minute), train.TargetArrivalTime())
	})

	t.Run("malformed expected timestamp", func(t *testing.T) {
		record := pass("E", "De Akkers", 10*time.Minute, 0)
		record.ExpectedArrivalTime = "not-a-timestamp"

		_, err := NewTrain("pass-1", record)
		var malformed *MalformedTimestampError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "ExpectedArrivalTime", malformed.Field)
		assert.Equal(t, "not-a-timestamp", malformed.Value)
	})

	t.Run("malformed target timestamp", func(t *testing.T) {
		record := pass("E", "De Akkers", 10*time.Minute, 0)
		record.TargetArrivalTime = ""

		_, err := NewTrain("pass-1", record)
		var malformed *MalformedTimestampError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "TargetArrivalTime", malformed.Field)
	})
}

func TestTrainDelayMinutes(t *testing.T) {
	tests := []struct {
		name     string
		delay    time.Duration
		expected int
	}{
		{"on time", 0, 0},
		{"late", 3 * time.Minute, 3},
		{"late with seconds truncated", 150 * time.Second, 2},
		{"early is negative", -2 * time.Minute, -2},
		{"slightly early truncates to zero", -30 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train, err := NewTrain("p", pass("E", "Slinge", 10*time.Minute, tt.delay))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, train.DelayMinutes())
		})
	}
}

func TestTrainMinutesUntil(t *testing.T) {
	train, err := NewTrain("p", pass("E", "Slinge", 10*time.Minute, 0))
	require.NoError(t, err)

	t.Run("counts down as now advances", func(t *testing.T) {
		assert.Equal(t, 10, train.MinutesUntil(baseTime))
		assert.Equal(t, 5, train.MinutesUntil(baseTime.Add(5*time.Minute)))
		assert.Equal(t, 0, train.MinutesUntil(baseTime.Add(9*time.Minute+30*time.Second)))
	})

	t.Run("departed train goes negative", func(t *testing.T) {
		assert.Equal(t, -5, train.MinutesUntil(baseTime.Add(15*time.Minute)))
	})
}
