// Package matrix provides the numeric storage used by the power-flow solver.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix for Jacobians and reduced
//     susceptance blocks, with bounds-checked At/Set and a finite-only
//     numeric policy.
//   - Sparse[T]: an immutable CSR matrix over float64 or complex128, built
//     from a Triplet stamp buffer that sums duplicate coordinates. Bus
//     admittance matrices live here.
//   - Factorize / LUFactor: Doolittle LU with partial pivoting and a
//     relative pivot threshold, reusable across right-hand sides.
//
// Every user-triggered failure is reported through a sentinel in errors.go;
// singular inputs surface as *PivotError, which matches ErrSingular.
package matrix
