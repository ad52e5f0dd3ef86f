package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/searchtool/internal/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestClampContext(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{5, 5},
		{6, 5},
		{99, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampContext(tt.in), "ClampContext(%d)", tt.in)
	}
}

func TestScan_ContextAroundMatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.log", "start", "ERROR bad thing", "end")

	result := Scan(path, "ERROR", 1)

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.MatchCount)
	require.Len(t, result.Reports, 1)

	report := result.Reports[0]
	assert.Equal(t, 1, report.Index)
	assert.Equal(t, Line{Number: 2, Text: "ERROR bad thing"}, report.Line)
	assert.Equal(t, []Line{{Number: 1, Text: "start"}}, report.Before)
	assert.Equal(t, []Line{{Number: 3, Text: "end"}}, report.After)
}

func TestScan_NoMatches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "b.txt", "nothing here")

	result := Scan(path, "ERROR", 2)

	assert.False(t, result.HasMatch())
	assert.Equal(t, 0, result.MatchCount)
	assert.Empty(t, result.Reports)
	assert.NoError(t, result.Err)
}

func TestScan_UnreadableFile(t *testing.T) {
	result := Scan(filepath.Join(t.TempDir(), "missing.log"), "x", 0)

	assert.False(t, result.HasMatch())
	assert.Empty(t, result.Reports)
	assert.Error(t, result.Err)
}

func TestScan_ZeroContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.log", "a ok", "b fail", "c ok", "d fail")

	result := Scan(path, "fail", 0)

	require.Len(t, result.Reports, 2)
	assert.Equal(t, Line{Number: 2, Text: "b fail"}, result.Reports[0].Line)
	assert.Equal(t, Line{Number: 4, Text: "d fail"}, result.Reports[1].Line)
	assert.Equal(t, 2, result.Reports[1].Index)
	for _, r := range result.Reports {
		assert.Empty(t, r.Before)
		assert.Empty(t, r.After)
	}
}

func TestScan_ContextAtFileEdges(t *testing.T) {
	path := writeFile(t, t.TempDir(), "edge.log", "hit first", "x", "y", "hit last")

	result := Scan(path, "hit", 3)

	require.Len(t, result.Reports, 1, "the second hit is swallowed by the first one's trailing context")
	first := result.Reports[0]
	assert.Empty(t, first.Before)
	assert.Equal(t, []Line{{2, "x"}, {3, "y"}, {4, "hit last"}}, first.After)
	assert.Equal(t, 2, result.MatchCount)
}

func TestScan_LeadingContextIsBounded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bounded.log", "1", "2", "3", "4", "5", "6", "7", "MATCH")

	result := Scan(path, "MATCH", 2)

	require.Len(t, result.Reports, 1)
	assert.Equal(t, []Line{{6, "6"}, {7, "7"}}, result.Reports[0].Before)
	assert.Empty(t, result.Reports[0].After)
}

func TestScan_ClassicTrailingContextLimitation(t *testing.T) {
	// Trailing lines are pulled from the stream: "m2" at line 3 is never evaluated and
	// the following lines are numbered as if lines 2-3 had not been read.
	path := writeFile(t, t.TempDir(), "limits.log", "m1", "a", "m2", "b", "m3", "c")

	result := Scan(path, "m", 2)

	assert.Equal(t, 3, result.MatchCount)
	require.Len(t, result.Reports, 2)

	assert.Equal(t, Line{1, "m1"}, result.Reports[0].Line)
	assert.Equal(t, []Line{{2, "a"}, {3, "m2"}}, result.Reports[0].After)

	second := result.Reports[1]
	assert.Equal(t, 2, second.Index)
	assert.Equal(t, Line{3, "m3"}, second.Line)
	assert.Equal(t, []Line{{1, "m1"}, {2, "b"}}, second.Before)
	assert.Equal(t, []Line{{4, "c"}}, second.After)
}

func TestScan_ContextClamp(t *testing.T) {
	lines := []string{"1", "2", "3", "4", "5", "6", "HIT", "8", "9", "10", "11", "12", "13"}
	path := writeFile(t, t.TempDir(), "clamp.log", lines...)

	big := Scan(path, "HIT", 99)
	five := Scan(path, "HIT", 5)

	assert.Equal(t, five, big)
	require.Len(t, five.Reports, 1)
	assert.Len(t, five.Reports[0].Before, 5)
	assert.Len(t, five.Reports[0].After, 5)
}

func TestScan_Idempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.log", "x", "err one", "y", "err two", "z")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	first := Scan(path, "err", 1)
	second := Scan(path, "err", 1)

	assert.Equal(t, first, second)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScan_OversizedLineIsSplit(t *testing.T) {
	long := strings.Repeat("a", MaxLineLength) + "TAIL"
	path := writeFile(t, t.TempDir(), "big.log", long, "next")

	result := Scan(path, "TAIL", 0)

	require.Len(t, result.Reports, 1)
	assert.Equal(t, Line{Number: 2, Text: "TAIL"}, result.Reports[0].Line)

	whole := Scan(path, "aTAIL", 0)
	assert.False(t, whole.HasMatch(), "a term spanning the split point is not found")
}

func TestScan_LastLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo MATCH"), 0644))

	result := Scan(path, "MATCH", 1)

	require.Len(t, result.Reports, 1)
	assert.Equal(t, Line{2, "two MATCH"}, result.Reports[0].Line)
	assert.Equal(t, []Line{{1, "one"}}, result.Reports[0].Before)
}

func TestScanFile_StreamsReportsInOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stream.log", "hit 1", "x", "hit 2", "y", "hit 3")
	scanner := NewScanner(expression.Parse("hit"), ScanOptions{})

	var streamed []MatchReport
	result := scanner.ScanFile(path, func(r MatchReport) {
		streamed = append(streamed, r)
	})

	require.Len(t, streamed, 3)
	assert.Equal(t, result.Reports, streamed)
	for i, r := range streamed {
		assert.Equal(t, i+1, r.Index)
	}
}

func TestScanFile_SlidingMode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "limits.log", "m1", "a", "m2", "b", "m3", "c")
	scanner := NewScanner(expression.Parse("m"), ScanOptions{ContextLines: 2, Mode: ContextSliding})

	var streamed []MatchReport
	result := scanner.ScanFile(path, func(r MatchReport) {
		streamed = append(streamed, r)
	})

	assert.Equal(t, 3, result.MatchCount)
	require.Len(t, result.Reports, 3)
	assert.Equal(t, result.Reports, streamed)

	assert.Equal(t, Line{1, "m1"}, result.Reports[0].Line)
	assert.Empty(t, result.Reports[0].Before)
	assert.Equal(t, []Line{{2, "a"}, {3, "m2"}}, result.Reports[0].After)

	assert.Equal(t, Line{3, "m2"}, result.Reports[1].Line)
	assert.Equal(t, []Line{{1, "m1"}, {2, "a"}}, result.Reports[1].Before)
	assert.Equal(t, []Line{{4, "b"}, {5, "m3"}}, result.Reports[1].After)

	assert.Equal(t, Line{5, "m3"}, result.Reports[2].Line)
	assert.Equal(t, []Line{{3, "m2"}, {4, "b"}}, result.Reports[2].Before)
	assert.Equal(t, []Line{{6, "c"}}, result.Reports[2].After)
	assert.Equal(t, 3, result.Reports[2].Index)
}

func TestScanFile_SlidingZeroContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "z.log", "m", "m", "x")
	scanner := NewScanner(expression.Parse("m"), ScanOptions{Mode: ContextSliding})

	result := scanner.ScanFile(path, nil)

	require.Len(t, result.Reports, 2)
	assert.Equal(t, 1, result.Reports[0].Line.Number)
	assert.Equal(t, 2, result.Reports[1].Line.Number)
}

func TestContextModeString(t *testing.T) {
	assert.Equal(t, "classic", ContextClassic.String())
	assert.Equal(t, "sliding", ContextSliding.String())
}
