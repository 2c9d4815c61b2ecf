package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountRows(t *testing.T) {
	cases := []struct {
		name string
		file string
		data string
		want int
	}{
		{"csv with header", "seed.csv", "q,a\n1,2\n\n3,4\n", 2},
		{"csv header only", "seed.csv", "q,a\n", 1},
		{"empty file", "seed.csv", "", 1},
		{"unknown extension as csv", "seed.txt", "h\nx\ny\nz", 3},
		{"json array", "seed.json", `[{"q":1},{"q":2},{"q":3}]`, 3},
		{"json empty array", "seed.json", `[]`, 1},
		{"json object", "seed.JSON", `{"q":1}`, 1},
		{"jsonl", "seed.jsonl", "{\"q\":1}\n\n{\"q\":2}\n", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CountRows(tc.file, []byte(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCountRows_Invalid(t *testing.T) {
	_, err := CountRows("seed.json", []byte(`[{"q":1},`))
	assert.ErrorIs(t, err, ErrUnreadableSeed)

	_, err = CountRows("seed.jsonl", []byte("{\"q\":1}\nnot json\n"))
	assert.ErrorIs(t, err, ErrUnreadableSeed)
}

func TestSeedUpload_StageBoundaries(t *testing.T) {
	tl := SeedUpload(7)

	start := tl.At(0)
	assert.Equal(t, UploadUploading, start.Stage)
	assert.True(t, start.Uploading)
	assert.Equal(t, 7, start.Rows)

	assert.Equal(t, 3, tl.At(150*ms).Progress)
	assert.Equal(t, 27, tl.At(1499*ms).Progress)

	parsing := tl.At(1500 * ms)
	assert.Equal(t, UploadParsing, parsing.Stage)
	assert.Equal(t, 30, parsing.Progress)

	firstParse := tl.At(1680 * ms)
	assert.Equal(t, 32, firstParse.Progress)
	assert.Equal(t, 0, firstParse.ProcessedRows)

	validating := tl.At(3300 * ms)
	assert.Equal(t, UploadValidating, validating.Stage)
	assert.Equal(t, 55, validating.Progress)
	assert.Equal(t, 7, validating.ProcessedRows)

	assert.Equal(t, 58, tl.At(3420*ms).Progress)

	analyzing := tl.At(4140 * ms)
	assert.Equal(t, UploadAnalyzing, analyzing.Stage)
	assert.Equal(t, 75, analyzing.Progress)

	full := tl.At(5640 * ms)
	assert.Equal(t, 100, full.Progress)
	assert.True(t, full.Uploading)

	done := tl.At(6240 * ms)
	assert.False(t, done.Uploading)
	assert.True(t, done.Uploaded)
	assert.Equal(t, 6240*ms, tl.End())
}

func TestSeedUpload_ProgressNeverDecreases(t *testing.T) {
	tl := SeedUpload(1234)
	prev := 0
	prevRows := 0
	for _, f := range tl.Frames() {
		require.GreaterOrEqual(t, f.State.Progress, prev)
		require.GreaterOrEqual(t, f.State.ProcessedRows, prevRows)
		require.LessOrEqual(t, f.State.ProcessedRows, 1234)
		prev = f.State.Progress
		prevRows = f.State.ProcessedRows
	}
}

func TestSeedUpload_ClampsRows(t *testing.T) {
	assert.Equal(t, 1, SeedUpload(0).Final().Rows)
}
