package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epinet/matrix"
)

func TestNewDense_ShapeValidation(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 1, 0.5))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.5, v)

	_, err = m.At(2, 0)
	require.True(t, errors.Is(err, matrix.ErrOutOfRange))
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	_, err = m.Row(5)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_RowIsCopy(t *testing.T) {
	m, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	row, err := m.Row(0)
	require.NoError(t, err)
	row[0] = 99
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v, "Row must not alias backing storage")

	c := m.Clone()
	require.NoError(t, c.Set(1, 1, -1))
	v, _ = m.At(1, 1)
	require.Equal(t, 4.0, v, "Clone must deep-copy")
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestValidators(t *testing.T) {
	rect, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)

	m, _ := matrix.NewDenseFromRows([][]float64{
		{0.7, 0.2, 0.1},
		{0.0, 1.0, 0.0},
		{0.5, -0.5, 1.0},
	})
	require.ErrorIs(t, matrix.ValidateNonNegative(m), matrix.ErrNegative)

	sum, err := matrix.OffDiagonalRowSum(m, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.3, sum, 1e-12)

	sum, err = matrix.RowSum(m, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, sum)

	require.NoError(t, m.Set(2, 1, 0.0))
	require.ErrorIs(t, matrix.ValidateRowSums(m, 1.0, 1e-9), matrix.ErrRowSum)
	require.NoError(t, m.Set(2, 2, 0.5))
	require.NoError(t, matrix.ValidateRowSums(m, 1.0, 1e-9))
}
