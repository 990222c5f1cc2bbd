package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomMetricGeneratorSeriesShape(t *testing.T) {
	gen := NewRandomMetricGenerator()
	for round := 0; round < 50; round++ {
		data := gen.Series()
		require.Len(t, data.Labels, 12)
		require.Len(t, data.Series, 6)
		for _, s := range data.Series {
			require.Len(t, s.Values, 12)
			for _, v := range s.Values {
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, 10)
			}
		}
	}
}

func TestRandomMetricGeneratorLabelsAndNames(t *testing.T) {
	gen := &RandomMetricGenerator{
		Reference: time.Date(2024, time.February, 13, 12, 0, 0, 0, time.UTC),
		IntN:      func(int) int { return 3 },
	}
	data := gen.Series()

	assert.Equal(t, "12:00 PM", data.Labels[0])
	assert.Equal(t, "12:05 PM", data.Labels[1])
	assert.Equal(t, "12:55 PM", data.Labels[11])

	names := make([]string, len(data.Series))
	for i, s := range data.Series {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"FulfillmentWebhookController",
		"AuthenticationController1",
		"AuthenticationController2",
		"PaymentChannelController",
		"CustomerController",
		"CustomerPaymentCredit",
	}, names)
	assert.Equal(t, "#8884d8", data.Series[0].Color)
	assert.Equal(t, 3, data.Series[5].Values[11])
}

func TestRandomMetricGeneratorCount(t *testing.T) {
	gen := NewRandomMetricGenerator()
	for i := 0; i < 200; i++ {
		c := gen.Count()
		assert.GreaterOrEqual(t, c.Value, 0)
		assert.Less(t, c.Value, 1000)
		assert.GreaterOrEqual(t, c.Increase, 0.0)
		assert.Less(t, c.Increase, 20.0)
	}
}

func TestRandomMetricGeneratorCountRoundsToOneDecimal(t *testing.T) {
	gen := &RandomMetricGenerator{
		IntN:    func(int) int { return 468 },
		Float64: func() float64 { return 0.6249 },
	}
	c := gen.Count()
	assert.Equal(t, 468, c.Value)
	assert.Equal(t, 12.5, c.Increase)

	gen.Float64 = func() float64 { return 0.9999 }
	assert.Equal(t, 19.9, gen.Count().Increase)
}

func TestNilGeneratorUsesDefaults(t *testing.T) {
	var gen *RandomMetricGenerator
	assert.Len(t, gen.Series().Series, 6)
}
