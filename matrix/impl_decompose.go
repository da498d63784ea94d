// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense factorizations over flat row-major buffers: LU with partial
//     pivoting (Det, Inverse), Householder QR and the Jacobi eigen
//     decomposition of symmetric matrices.
//
// Contract:
//   - Inputs are never mutated; every result is freshly allocated.
//   - LU: P·A = L·U with L unit lower triangular; perm[i] is the source row of
//     row i of P·A.
//   - QR: A = Q·R for any r×c with r >= c; Q is r×r orthogonal, R is r×c upper
//     triangular.
//   - SymmetricEigen: eigenvalues in descending order, eigenvectors as the
//     matching columns of V, so A·V = V·diag(values).

package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	opLU             = "LU"
	opDet            = "Det"
	opInverse        = "Inverse"
	opQR             = "QR"
	opSymmetricEigen = "SymmetricEigen"
)

// Defaults for SymmetricEigen when tol or maxIter are not positive.
const (
	DefaultEigenTol = 1e-12
	minEigenIter    = 1000
	eigenIterPerN2  = 50

	// symmetryTol bounds |a_ij - a_ji| relative to 1+|a_ij|.
	symmetryTol = 1e-9

	eps = 0x1p-52 // float64 machine epsilon
)

// luFactors holds L and U packed in one buffer (unit diagonal of L implied).
type luFactors struct {
	n    int
	lu   []float64
	perm []int
	sign float64
	amax float64 // max |a_ij| of the input, scale for the singularity test
}

// factorLU runs Doolittle elimination with partial pivoting on a square d.
// A zero pivot column is skipped, leaving U[k][k] == 0.
func factorLU(d *Dense) luFactors {
	n := d.r
	f := luFactors{n: n, lu: make([]float64, n*n), perm: make([]int, n), sign: 1}
	copy(f.lu, d.data)
	for i := range f.perm {
		f.perm[i] = i
	}
	for _, v := range f.lu {
		f.amax = math.Max(f.amax, math.Abs(v))
	}

	lu := f.lu
	var i, j, k, p int
	var best, a, pivot, l float64
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if a = math.Abs(lu[i*n+k]); a > best {
				p, best = i, a
			}
		}
		if p != k {
			for j = 0; j < n; j++ {
				lu[k*n+j], lu[p*n+j] = lu[p*n+j], lu[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
			f.sign = -f.sign
		}
		pivot = lu[k*n+k]
		if pivot == 0 {
			continue
		}
		for i = k + 1; i < n; i++ {
			l = lu[i*n+k] / pivot
			lu[i*n+k] = l
			if l != 0 {
				floats.AddScaled(lu[i*n+k+1:(i+1)*n], -l, lu[k*n+k+1:(k+1)*n])
			}
		}
	}

	return f
}

// singular reports whether some pivot is negligible against the input scale.
func (f luFactors) singular() (int, bool) {
	tol := float64(f.n) * eps * f.amax
	for k := 0; k < f.n; k++ {
		if math.Abs(f.lu[k*f.n+k]) <= tol {
			return k, true
		}
	}

	return -1, false
}

// squareDense densifies m and checks it is square.
func squareDense(tag string, m Matrix) (*Dense, error) {
	d, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if d.r != d.c {
		return nil, matrixErrorf(tag, fmt.Errorf("non-square %dx%d: %w", d.r, d.c, ErrDimensionMismatch))
	}

	return d, nil
}

// LU factors a square matrix as P·A = L·U.
// Returns:
//   - L: unit lower triangular n×n.
//   - U: upper triangular n×n (a singular A yields a zero on U's diagonal).
//   - perm: row permutation, row i of P·A is row perm[i] of A.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square).
// Complexity: Time O(n³), Space O(n²).
func LU(m Matrix) (L, U *Dense, perm []int, err error) {
	d, err := squareDense(opLU, m)
	if err != nil {
		return nil, nil, nil, err
	}
	f := factorLU(d)
	n := f.n
	if L, err = NewIdentity(n); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	if U, err = NewDense(n, n); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if j < i {
				L.data[i*n+j] = f.lu[i*n+j]
			} else {
				U.data[i*n+j] = f.lu[i*n+j]
			}
		}
	}

	return L, U, f.perm, nil
}

// Det returns the determinant of a square matrix (1 for the 0×0 matrix).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Det(m Matrix) (float64, error) {
	d, err := squareDense(opDet, m)
	if err != nil {
		return 0, err
	}
	f := factorLU(d)
	det := f.sign
	for k := 0; k < f.n; k++ {
		det *= f.lu[k*f.n+k]
	}

	return det, nil
}

// Inverse returns A⁻¹ by solving L·U·x = P·eᵢ for every basis vector.
// A pivot below n·ε·max|a_ij| is treated as zero.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
// Complexity: Time O(n³), Space O(n²).
func Inverse(m Matrix) (*Dense, error) {
	d, err := squareDense(opInverse, m)
	if err != nil {
		return nil, err
	}
	f := factorLU(d)
	if k, bad := f.singular(); bad {
		return nil, matrixErrorf(opInverse, fmt.Errorf("pivot %d: %w", k, ErrSingular))
	}

	n := f.n
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	x := make([]float64, n)
	var col, i, k int
	var sum float64
	for col = 0; col < n; col++ {
		// forward: L·y = P·e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			if f.perm[i] == col {
				sum = 1
			}
			for k = 0; k < i; k++ {
				sum -= f.lu[i*n+k] * x[k]
			}
			x[i] = sum
		}
		// backward: U·x = y
		for i = n - 1; i >= 0; i-- {
			sum = x[i]
			for k = i + 1; k < n; k++ {
				sum -= f.lu[i*n+k] * x[k]
			}
			x[i] = sum / f.lu[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}
	if !floatsAllFinite(inv.data) {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	return inv, nil
}

// QR returns Q and R with A = Q·R via Householder reflections.
// Zero columns are skipped. R's strictly-lower part is exactly zero.
// Errors: ErrNilMatrix, ErrDimensionMismatch (rows < cols).
// Complexity: Time O(r²·c), Space O(r² + r·c).
func QR(m Matrix) (Q, R *Dense, err error) {
	d, err := densify(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	r, c := d.r, d.c
	if r < c {
		return nil, nil, matrixErrorf(opQR, fmt.Errorf("%dx%d has more columns than rows: %w", r, c, ErrDimensionMismatch))
	}
	R = d.Copy()
	// Qt accumulates H_k…H_1 so that Qt·A = R; Q = Qtᵀ.
	Qt, err := NewIdentity(r)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	v := make([]float64, r)
	apply := func(buf []float64, cols, k int, tau float64) {
		var i, j int
		var s float64
		for j = 0; j < cols; j++ {
			s = ZeroSum
			for i = k; i < r; i++ {
				s += v[i] * buf[i*cols+j]
			}
			if s == 0 {
				continue
			}
			s *= tau
			for i = k; i < r; i++ {
				buf[i*cols+j] -= s * v[i]
			}
		}
	}

	var i, k int
	var norm, alpha, beta float64
	steps := c
	if r == c {
		steps = c - 1
	}
	for k = 0; k < steps; k++ {
		norm = ZeroSum
		for i = k; i < r; i++ {
			norm = math.Hypot(norm, R.data[i*c+k])
		}
		if norm == 0 {
			continue
		}
		alpha = -math.Copysign(norm, R.data[k*c+k])
		for i = 0; i < k; i++ {
			v[i] = 0
		}
		for i = k; i < r; i++ {
			v[i] = R.data[i*c+k]
		}
		v[k] -= alpha
		beta = floats.Dot(v[k:], v[k:])
		if beta == 0 {
			continue
		}
		apply(R.data, c, k, 2/beta)
		apply(Qt.data, r, k, 2/beta)
		R.data[k*c+k] = alpha
		for i = k + 1; i < r; i++ {
			R.data[i*c+k] = 0
		}
	}

	if Q, err = Transpose(Qt); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	return Q, R, nil
}

// SymmetricEigen diagonalizes a real symmetric matrix with classical Jacobi
// rotations (largest off-diagonal pivot first).
//
// Parameters:
//   - tol: stop once every |a_pq| <= tol·max|a_ij|; <= 0 means DefaultEigenTol.
//   - maxIter: rotation budget; <= 0 means max(1000, 50·n²).
//
// Returns eigenvalues sorted descending and V whose column i is the unit
// eigenvector of values[i].
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNotSymmetric, ErrNoConvergence.
// Complexity: O(n²) per rotation (pivot search dominates).
func SymmetricEigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	d, err := squareDense(opSymmetricEigen, m)
	if err != nil {
		return nil, nil, err
	}
	n := d.r
	var i, j int
	var aij, aji, amax float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			aij, aji = d.data[i*n+j], d.data[j*n+i]
			if math.Abs(aij-aji) > symmetryTol*(1+math.Abs(aij)) {
				return nil, nil, matrixErrorf(opSymmetricEigen,
					fmt.Errorf("a[%d,%d]=%g, a[%d,%d]=%g: %w", i, j, aij, j, i, aji, ErrNotSymmetric))
			}
			amax = math.Max(amax, math.Abs(aij))
		}
	}
	if tol <= 0 {
		tol = DefaultEigenTol
	}
	if maxIter <= 0 {
		maxIter = max(minEigenIter, eigenIterPerN2*n*n)
	}
	threshold := tol * amax

	A := d.Copy()
	a := A.data
	V, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opSymmetricEigen, err)
	}
	v := V.data

	var (
		iter, p, q, k  int
		off, big       float64
		theta, t, c, s float64
		apq, akp, akq  float64
		converged      bool
	)
	for iter = 0; ; iter++ {
		big, p, q = 0, 0, 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if off = math.Abs(a[i*n+j]); off > big {
					big, p, q = off, i, j
				}
			}
		}
		if big <= threshold {
			converged = true
			break
		}
		if iter == maxIter {
			break
		}

		apq = a[p*n+q]
		theta = (a[q*n+q] - a[p*n+p]) / (2 * apq)
		t = 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		if theta < 0 {
			t = -t
		}
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		a[p*n+p] -= t * apq
		a[q*n+q] += t * apq
		a[p*n+q], a[q*n+p] = 0, 0
		for k = 0; k < n; k++ {
			if k != p && k != q {
				akp, akq = a[k*n+p], a[k*n+q]
				a[k*n+p] = c*akp - s*akq
				a[p*n+k] = a[k*n+p]
				a[k*n+q] = s*akp + c*akq
				a[q*n+k] = a[k*n+q]
			}
			akp, akq = v[k*n+p], v[k*n+q]
			v[k*n+p] = c*akp - s*akq
			v[k*n+q] = s*akp + c*akq
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opSymmetricEigen,
			fmt.Errorf("%d rotations, off-diagonal %g: %w", maxIter, big, ErrNoConvergence))
	}

	order := make([]int, n)
	for i = range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return a[order[x]*n+order[x]] > a[order[y]*n+order[y]] })

	values := make([]float64, n)
	vecs, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opSymmetricEigen, err)
	}
	for j = 0; j < n; j++ {
		values[j] = a[order[j]*n+order[j]]
		for i = 0; i < n; i++ {
			vecs.data[i*n+j] = v[i*n+order[j]]
		}
	}

	return values, vecs, nil
}

func floatsAllFinite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
