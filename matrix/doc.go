// Package matrix provides a small dense-matrix core tuned for per-age-group
// transition hazard tables.
//
// What it offers:
//
//   - Dense: row-major float64 storage with bounds-checked At/Set/Row.
//   - Validators: ValidateSquare, ValidateNonNegative, ValidateRowSums.
//   - Row helpers: RowSum and OffDiagonalRowSum for diagonal completion
//     (diag = 1 − Σ off-diagonal) used by the Markov transition model.
//
// Errors:
//
//	ErrBadShape      - non-positive or ragged shape
//	ErrOutOfRange    - row/column index outside bounds
//	ErrNonSquare     - square matrix required
//	ErrNilMatrix     - nil matrix passed to a validator
//	ErrNegative      - negative or NaN entry
//	ErrRowSum        - row sum outside the requested tolerance
//
// All errors are sentinels wrapped with method context; match them with errors.Is.
package matrix
