// Package linsolve solves the square linear systems of the power-flow
// methods: Newton-Raphson corrections, fast-decoupled angle and magnitude
// updates, and the DC angle solve.
//
// Two interchangeable strategies exist. Generic factorizes through
// gonum/mat (LAPACK getrf) and rejects ill-conditioned systems by their
// condition estimate; LU uses the pivoting kernel of package matrix and
// rejects systems by relative pivot size. Both return *SingularMatrixError
// instead of NaN-poisoned results, and both expose Factorize so that a
// constant matrix is factorized once and reused.
package linsolve
