package stages

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"time"

	"finetune-sim/internal/sim/timeline"

	"github.com/tidwall/gjson"
)

// ErrUnreadableSeed is returned when a seed file cannot be parsed for its row count.
var ErrUnreadableSeed = errors.New("seed file is not readable")

// UploadStage names the phases of a seed upload.
type UploadStage string

const (
	UploadUploading  UploadStage = "uploading"
	UploadParsing    UploadStage = "parsing"
	UploadValidating UploadStage = "validating"
	UploadAnalyzing  UploadStage = "analyzing"
)

type uploadPhase struct {
	stage    UploadStage
	interval time.Duration
	step     float64
	until    float64
}

var uploadPhases = []uploadPhase{
	{UploadUploading, 150 * time.Millisecond, 3, 30},
	{UploadParsing, 180 * time.Millisecond, 2.5, 55},
	{UploadValidating, 120 * time.Millisecond, 3.3, 75},
	{UploadAnalyzing, 150 * time.Millisecond, 2.5, 100},
}

// UploadSettle is the pause between reaching 100% and the upload completing.
const UploadSettle = 600 * time.Millisecond

// SeedUploadState is the seed upload progress at one instant.
type SeedUploadState struct {
	Stage         UploadStage `json:"stage"`
	Progress      int         `json:"progress"`
	Rows          int         `json:"rows"`
	ProcessedRows int         `json:"processed_rows"`
	Uploading     bool        `json:"uploading"`
	Uploaded      bool        `json:"uploaded"`
}

// CountRows returns the number of seed examples in data, choosing the format
// from the file extension. JSON arrays count elements, JSON Lines count
// non-empty lines, and anything else is treated as CSV with a header row.
func CountRows(filename string, data []byte) (int, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		if !gjson.ValidBytes(data) {
			return 0, ErrUnreadableSeed
		}
		doc := gjson.ParseBytes(data)
		if doc.IsArray() {
			return max(1, len(doc.Array())), nil
		}
		return 1, nil
	case ".jsonl", ".ndjson":
		n := 0
		for _, line := range nonEmptyLines(data) {
			if !gjson.Valid(line) {
				return 0, ErrUnreadableSeed
			}
			n++
		}
		return max(1, n), nil
	default:
		return max(1, len(nonEmptyLines(data))-1), nil
	}
}

func nonEmptyLines(data []byte) []string {
	var out []string
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		out = append(out, string(line))
	}
	return out
}

// SeedUpload records the four-phase upload of a file with rows examples.
// Each phase ticks its percentage forward on its own interval and hands off
// to the next when it reaches its ceiling.
func SeedUpload(rows int) *timeline.Timeline[SeedUploadState] {
	if rows < 1 {
		rows = 1
	}
	initial := SeedUploadState{Stage: UploadUploading, Rows: rows, Uploading: true}
	return timeline.Record(initial, 0, func(l *timeline.Loop, emit func(SeedUploadState)) {
		state := initial

		var runPhase func(i int, from float64)
		runPhase = func(i int, from float64) {
			ph := uploadPhases[i]
			state.Stage = ph.stage
			progress := from

			var id timeline.TimerID
			id = l.SetInterval(ph.interval, func() {
				progress += ph.step
				if ph.stage == UploadParsing {
					state.ProcessedRows = int(math.Floor((progress - 30) / 25 * float64(rows)))
				}
				if progress < ph.until {
					state.Progress = int(math.Floor(progress))
					emit(state)
					return
				}

				l.Clear(id)
				state.Progress = int(ph.until)
				if i+1 < len(uploadPhases) {
					runPhase(i+1, ph.until)
					emit(state)
					return
				}
				emit(state)
				l.SetTimeout(UploadSettle, func() {
					state.Uploading = false
					state.Uploaded = true
					emit(state)
				})
			})
		}
		runPhase(0, 0)
	})
}
