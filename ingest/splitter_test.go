package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("the court considered the evidence presented ", n))
}

func TestNormalize(t *testing.T) {
	in := "first line\r\nsecond line\fthird   line"
	got := Normalize(in)

	assert.NotContains(t, got, "\r")
	assert.NotContains(t, got, "\f")
	assert.NotContains(t, got, "   ")
}

func TestSplitCasesTwoJudgments(t *testing.T) {
	volume := "MYANMAR LAW REPORTS 2021\n\n" +
		"Case No. 12 of 2021\n" + filler(10) + "\n\n" +
		"Case No. 13 of 2021\n" + filler(10)

	chunks := SplitCases(volume)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[0], "Case No. 12"))
	assert.True(t, strings.HasPrefix(chunks[1], "Case No. 13"))
	// The volume preamble before the first boundary is not a judgment.
	assert.NotContains(t, chunks[0], "MYANMAR LAW REPORTS")
}

func TestSplitCasesMyanmarHeaders(t *testing.T) {
	volume := "တရားမကြီးမှု အမှတ် ၁\n" + filler(10) + "\n\n" +
		"ရာဇဝတ်မှု အမှတ် ၂\n" + filler(10)

	chunks := SplitCases(volume)

	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "တရားမကြီးမှု")
	assert.Contains(t, chunks[1], "ရာဇဝတ်မှု")
}

func TestSplitCasesDropsShortChunks(t *testing.T) {
	// The second boundary is followed by footer noise shorter than the
	// chunk floor; it must not surface as a judgment.
	volume := "Case No. 1 of 2021\n" + filler(10) + "\n\n" +
		"Case No. 2 of 2021\nend of volume"

	chunks := SplitCases(volume)

	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "Case No. 1"))
}

func TestSplitCasesFloorCountsRunes(t *testing.T) {
	// Myanmar script runs three bytes per rune; a chunk over the floor
	// in bytes but under it in characters is still noise.
	long := strings.Repeat("ဗျဉ", 150) // 450 runes
	short := strings.Repeat("ဗျဉ", 40) // 120 runes, ~360 bytes

	volume := "တရားမကြီးမှု အမှတ် ၁\n" + long + "\n\nရာဇဝတ်မှု အမှတ် ၂\n" + short

	chunks := SplitCases(volume)

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "တရားမကြီးမှု")
}

func TestSplitCasesFallbackSingleChunk(t *testing.T) {
	// No boundary matches at all: the whole document comes back as one
	// chunk rather than nothing.
	text := "short note without any recognizable header"
	chunks := SplitCases(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, Normalize(text), chunks[0])
}

func TestSplitCasesNeverEmpty(t *testing.T) {
	// Boundaries exist but every candidate is under the floor; the
	// fallback still returns the full document.
	text := "Case No. 1 of 2021\ntoo short"
	chunks := SplitCases(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, Normalize(text), chunks[0])
}
