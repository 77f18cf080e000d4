// ==============================================================================================
// FILE: diag/position_test.go
// ==============================================================================================
// PACKAGE: diag
// PURPOSE: The position-span invariant: a widened position always starts
//          at its first token and ends at its last.
// ==============================================================================================

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionUntilSpansFirstToLast(t *testing.T) {
	first := NewPosition("f.slo", 3, 2)
	lastCol := 9
	last := Position{Filename: "f.slo", Line: 3, FirstCol: 8, LastCol: &lastCol}

	span := first.Until(last)

	assert.Equal(t, first.FirstCol, span.FirstCol, "span must start at the first token's column")
	require.NotNil(t, span.LastCol)
	assert.Equal(t, lastCol, *span.LastCol, "span must end at the last token's last column")
	assert.Equal(t, first.Line, span.Line)
}

func TestPositionUntilWithSinglePointOther(t *testing.T) {
	first := NewPosition("f.slo", 1, 0)
	other := NewPosition("f.slo", 1, 4) // a token position with no LastCol of its own

	span := first.Until(other)

	require.NotNil(t, span.LastCol)
	assert.Equal(t, 4, *span.LastCol)
}

func TestPositionStringFormat(t *testing.T) {
	p := NewPosition("main.slo", 7, 1)
	assert.Equal(t, "main.slo:7:1", p.String())
}
