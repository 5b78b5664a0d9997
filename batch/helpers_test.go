package batch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/batchlap/matrix"
)

func mustBatch(t *testing.T, ms [][][]float64) *matrix.Batch {
	t.Helper()
	bt, err := matrix.StackBatch(ms)
	require.NoError(t, err)

	return bt
}
