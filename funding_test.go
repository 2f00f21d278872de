package harvest_test

import (
	"testing"

	"github.com/startuppulse/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCurrencyAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"raised $5 million in new funding", 5e6, true},
		{"a $1.2B valuation", 1.2e9, true},
		{"$750k pre-seed", 750e3, true},
		{"$42", 42, true},
		{"no money mentioned", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := harvest.ExtractCurrencyAmount(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestExtractFundingStage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "series b", harvest.ExtractFundingStage("closed its Series B round"))
	assert.Equal(t, "seed", harvest.ExtractFundingStage("a seed investment from"))
	assert.Equal(t, "ipo", harvest.ExtractFundingStage("filed for an IPO"))
	assert.Empty(t, harvest.ExtractFundingStage("acquired by a larger rival"))
}

func TestExtractFundingData(t *testing.T) {
	t.Parallel()

	t.Run("parses roundup sections", func(t *testing.T) {
		t.Parallel()

		content := "intro\n\n## Massive Fundings\n\n**Acme Robotics** raised $120 million from **Sequoia**, **Index**.\n\n**Beta AI** landed $90 million.\n\n## Smaller Fundings\n\n**Gamma** raised $3 million.\n"

		data := harvest.ExtractFundingData(content)
		require.NotNil(t, data)

		massive := data["massiveFundings"]
		require.Len(t, massive, 2)
		assert.Equal(t, "Acme Robotics", massive[0].Company)
		assert.Equal(t, 120e6, massive[0].AmountUSD)
		assert.Equal(t, []string{"Sequoia", "Index"}, massive[0].Investors)

		require.Len(t, data["smallerFundings"], 1)
		assert.Empty(t, data["bigFundings"])
	})

	t.Run("nil when no funding sections", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, harvest.ExtractFundingData("a plain article about something else"))
		assert.Nil(t, harvest.ExtractFundingData(""))
	})
}
