package emojirank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerticalChart(t *testing.T) {
	got := verticalChart([]string{"😀", "😂"}, []int{4, 2})

	want := strings.Join([]string{
		"  █       ",
		"  █       ",
		"  █       ",
		"  █       ",
		"  █       ",
		"  █    █  ",
		"  █    █  ",
		"  █    █  ",
		"  █    █  ",
		"  █    █  ",
		" 😀   😂  ",
		"  4    2  ",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestVerticalChartSmallCountsStayVisible(t *testing.T) {
	got := verticalChart([]string{"a", "b"}, []int{1000, 1})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, chartHeight+2)

	// the tiny bar shows in the bottom row only
	bottom := lines[chartHeight-1]
	assert.Equal(t, "  █    █  ", bottom)
	for _, line := range lines[:chartHeight-1] {
		assert.Equal(t, "  █       ", line)
	}
}

func TestVerticalChartTallestBarFillsHeight(t *testing.T) {
	got := verticalChart([]string{"a"}, []int{7})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, chartHeight+2)
	for _, line := range lines[:chartHeight] {
		assert.Equal(t, "  █  ", line)
	}
}

func TestVerticalChartEmptyWithoutData(t *testing.T) {
	assert.Empty(t, verticalChart(nil, nil))
	assert.Empty(t, verticalChart([]string{"a"}, []int{0}))
}

func TestRankedListGroupsDigits(t *testing.T) {
	got := rankedList([]string{"😀", "<:wave:123>"}, []int{1234567, 3})

	want := "1\\. 😀 (1,234,567)\n2\\. <:wave:123> (3)"
	assert.Equal(t, want, got)
}

func TestRenderChartSitsInCodeFence(t *testing.T) {
	out := render(Timeframes[0], formatChart, []string{"😀"}, []int{2})

	assert.True(t, strings.HasPrefix(out, "**Top 20 emoji usage (1-week)**\n```\n"))
	assert.True(t, strings.HasSuffix(out, "\n```"))
}

func TestRenderListStaysPlain(t *testing.T) {
	out := render(Timeframes[len(Timeframes)-1], formatList, []string{"😀"}, []int{2})

	assert.Equal(t, "**Top 20 emoji usage (all-time)**\n1\\. 😀 (2)", out)
}

func TestCenter(t *testing.T) {
	assert.Equal(t, " 3 ", center("3", 3))
	assert.Equal(t, "12 ", center("12", 3))
	assert.Equal(t, "123", center("123", 3))
	assert.Equal(t, "1234", center("1234", 3))
}
