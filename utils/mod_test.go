package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"), "Should return the first match")
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
}

func TestFilter(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }

	require.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4}, even), "Should keep the order")
	require.Empty(t, Filter([]int{1, 3}, even))
	require.True(t, Any([]int{1, 2}, even))
	require.False(t, Any(nil, even))
}
