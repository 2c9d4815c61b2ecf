package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticSamples(t *testing.T) {
	rows := SyntheticSamples(42, 25)
	require.Len(t, rows, 25)
	assert.Equal(t, "sample_00001", rows[0].ID)
	assert.Equal(t, rows, SyntheticSamples(42, 25))

	for _, r := range rows {
		assert.NotContains(t, r.Customer, "%s")
		assert.Contains(t, SamplePersonas, r.Persona)
		assert.Len(t, r.Record(), len(SampleColumns))
	}
}

func TestSyntheticSamples_Empty(t *testing.T) {
	assert.Empty(t, SyntheticSamples(1, 0))
	assert.Empty(t, SyntheticSamples(1, -3))
}
