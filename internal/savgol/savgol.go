// Package savgol implements Savitzky-Golay smoothing and differentiation:
// a least-squares polynomial fit over a sliding window, evaluated at the
// window centre. Edge samples are handled by fitting a polynomial to the
// first and last full window and evaluating it at the edge positions, so
// the output always has the same length as the input.
package savgol

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidFilter indicates window/order/derivative parameters that
// violate the fit's mathematical preconditions.
var ErrInvalidFilter = errors.New("savgol: invalid filter parameters")

// Validate checks filter parameters without touching any data. The window
// must be a positive odd integer, the polynomial order non-negative and
// strictly less than the window, and the derivative order non-negative.
func Validate(window, polyorder, deriv int) error {
	if window < 1 || window%2 == 0 {
		return fmt.Errorf("%w: window %d must be a positive odd integer", ErrInvalidFilter, window)
	}
	if polyorder < 0 {
		return fmt.Errorf("%w: polynomial order %d must be non-negative", ErrInvalidFilter, polyorder)
	}
	if polyorder >= window {
		return fmt.Errorf("%w: polynomial order %d must be less than window %d", ErrInvalidFilter, polyorder, window)
	}
	if deriv < 0 {
		return fmt.Errorf("%w: derivative order %d must be non-negative", ErrInvalidFilter, deriv)
	}
	return nil
}

// Coeffs returns the convolution coefficients for the window centre at the
// given derivative order, assuming unit sample spacing. Coefficient k
// multiplies the sample at offset k-window/2 from the centre.
func Coeffs(window, polyorder, deriv int) ([]float64, error) {
	if err := Validate(window, polyorder, deriv); err != nil {
		return nil, err
	}
	coeffs := make([]float64, window)
	if deriv > polyorder {
		// The fitted polynomial has degree polyorder, so any higher
		// derivative is identically zero.
		return coeffs, nil
	}

	v := vandermonde(window, polyorder, -window/2)

	// Pseudo-inverse via the normal equations: pinv = (VᵀV)⁻¹Vᵀ. Row d of
	// pinv holds the fitted polynomial's degree-d coefficient as a linear
	// function of the window samples.
	var m, minv, pinv mat.Dense
	m.Mul(v.T(), v)
	if err := minv.Inverse(&m); err != nil {
		return nil, fmt.Errorf("%w: window %d with order %d is ill-conditioned: %v", ErrInvalidFilter, window, polyorder, err)
	}
	pinv.Mul(&minv, v.T())

	scale := factorial(deriv)
	for k := range coeffs {
		coeffs[k] = pinv.At(deriv, k) * scale
	}
	return coeffs, nil
}

// Filter applies the Savitzky-Golay filter to y and returns a new slice of
// the same length holding the smoothed signal (deriv 0) or its deriv-th
// derivative with respect to the sample index.
func Filter(y []float64, window, polyorder, deriv int) ([]float64, error) {
	coeffs, err := Coeffs(window, polyorder, deriv)
	if err != nil {
		return nil, err
	}
	n := len(y)
	if window > n {
		return nil, fmt.Errorf("%w: window %d exceeds signal length %d", ErrInvalidFilter, window, n)
	}

	half := window / 2
	out := make([]float64, n)
	for t := half; t < n-half; t++ {
		var sum float64
		for k, c := range coeffs {
			sum += c * y[t-half+k]
		}
		out[t] = sum
	}

	// Edge handling: fit a polynomial to the first and last window of
	// samples and evaluate its derivative at the uncovered positions.
	head, err := polyfit(y[:window], polyorder)
	if err != nil {
		return nil, err
	}
	for t := 0; t < half; t++ {
		out[t] = evalDeriv(head, deriv, float64(t))
	}
	tail, err := polyfit(y[n-window:], polyorder)
	if err != nil {
		return nil, err
	}
	for t := n - half; t < n; t++ {
		out[t] = evalDeriv(tail, deriv, float64(t-(n-window)))
	}
	return out, nil
}

// vandermonde builds the window×(polyorder+1) design matrix with positions
// offset, offset+1, ... along the rows.
func vandermonde(window, polyorder, offset int) *mat.Dense {
	v := mat.NewDense(window, polyorder+1, nil)
	for i := 0; i < window; i++ {
		x := float64(i + offset)
		p := 1.0
		for j := 0; j <= polyorder; j++ {
			v.Set(i, j, p)
			p *= x
		}
	}
	return v
}

// polyfit performs a least-squares fit of a degree-order polynomial to y
// sampled at x = 0, 1, ..., len(y)-1 and returns the coefficients in
// ascending degree order.
func polyfit(y []float64, order int) ([]float64, error) {
	v := vandermonde(len(y), order, 0)
	b := mat.NewVecDense(len(y), nil)
	for i, yv := range y {
		b.SetVec(i, yv)
	}

	var qr mat.QR
	qr.Factorize(v)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, b); err != nil {
		return nil, fmt.Errorf("savgol: edge polynomial fit failed: %w", err)
	}

	coefs := make([]float64, order+1)
	for j := range coefs {
		coefs[j] = sol.AtVec(j)
	}
	return coefs, nil
}

// evalDeriv evaluates the deriv-th derivative of the polynomial with the
// given ascending coefficients at x.
func evalDeriv(coefs []float64, deriv int, x float64) float64 {
	var sum float64
	for j := len(coefs) - 1; j >= deriv; j-- {
		w := 1.0
		for k := 0; k < deriv; k++ {
			w *= float64(j - k)
		}
		sum = sum*x + coefs[j]*w
	}
	return sum
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
