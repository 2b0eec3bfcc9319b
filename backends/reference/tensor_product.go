package reference

import (
	"math"
	"runtime"
	"sync"

	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/torus"
)

// TensorProductGlweCiphertext returns the tensor product of the two ciphertexts multiplied by the
// scale. The scale must be a power of two: other scales are reported as ErrUnsupportedScale.
func (eng *Engine[T]) TensorProductGlweCiphertext(input1, input2 *GlweCiphertext[T], scale *Cleartext[float64]) (*GlweCiphertext[T], error) {
	if err := engine.CheckGlweCiphertextTensorProduct(input1, input2); err != nil {
		return nil, err
	}
	errs := engine.GlweCiphertextTensorProductErrors
	if err := eng.alive(input1, input2, scale); err != nil {
		return nil, errs.Engine(err)
	}
	if _, ok := logScale(scale.value); !ok {
		return nil, errs.Engine(ErrUnsupportedScale)
	}
	return eng.TensorProductGlweCiphertextUnchecked(input1, input2, scale), nil
}

// TensorProductGlweCiphertextUnchecked returns the tensor product of the two ciphertexts multiplied
// by the scale, which must be a power of two.
//
// With lifted (centered) integer polynomials, the output is made of the masks
// [A_i B' + B A'_i]_i, [-A_i A'_i]_i, [-(A_i A'_j + A_j A'_i)]_{i<j} and of the body B B', each
// multiplied by the scale and rounded modulo q. Products are accumulated exactly on 128 bits, which
// is enough since only the bits [log(1/scale), log(1/scale) + log(q)) of the products are kept.
//
// The output polynomials are computed concurrently, with exact Fourier products up to
// torus.MaxFourierPolynomialSize and schoolbook products above.
func (eng *Engine[T]) TensorProductGlweCiphertextUnchecked(input1, input2 *GlweCiphertext[T], scale *Cleartext[float64]) *GlweCiphertext[T] {

	k, n := int(input1.GlweDimension()), int(input1.PolynomialSize())
	log, _ := logScale(scale.value)

	// polynomial k is the body, the others are the masks
	p1 := make([][]int64, k+1)
	p2 := make([][]int64, k+1)
	for i := 0; i < k; i++ {
		p1[i] = torus.Lift(input1.masks[i])
		p2[i] = torus.Lift(input2.masks[i])
	}
	p1[k] = torus.Lift(input1.body)
	p2[k] = torus.Lift(input2.body)

	terms := tensorTerms(k)

	var multiplier func() tensorMultiplier
	if n <= torus.MaxFourierPolynomialSize {
		bits := torus.Bits[T]()
		f := torus.NewFourier(n, bits)
		f1 := make([]torus.FourierPolynomial, k+1)
		f2 := make([]torus.FourierPolynomial, k+1)
		for i := range p1 {
			f1[i] = f.Transform(p1[i])
			f2[i] = f.Transform(p2[i])
		}
		multiplier = func() tensorMultiplier {
			f := torus.NewFourier(n, bits)
			acc := f.NewAccumulator()
			return func(pairs [][2]int, out []torus.Int128) {
				for _, pair := range pairs {
					f.MulThenAdd(f1[pair[0]], f2[pair[1]], acc)
				}
				f.Inverse(acc, out)
			}
		}
	} else {
		multiplier = func() tensorMultiplier {
			return func(pairs [][2]int, out []torus.Int128) {
				for c := range out {
					out[c] = torus.Int128{}
				}
				for _, pair := range pairs {
					torus.MulNegacyclicWideThenAdd(p1[pair[0]], p2[pair[1]], out)
				}
			}
		}
	}

	polys := make([][]T, len(terms))

	workers := min(runtime.GOMAXPROCS(0), len(terms))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			mul := multiplier()
			acc := make([]torus.Int128, n)
			for t := w; t < len(terms); t += workers {
				mul(terms[t].pairs, acc)
				poly := make([]T, n)
				for c := range acc {
					if terms[t].negate {
						poly[c] = torus.ScaleRound[T](torus.Int128{}.Sub(acc[c]), log)
					} else {
						poly[c] = torus.ScaleRound[T](acc[c], log)
					}
				}
				polys[t] = poly
			}
		}(w)
	}
	wg.Wait()

	return &GlweCiphertext[T]{
		handle:       eng.register(entity.GlweCiphertextKind),
		distribution: input1.distribution,
		masks:        polys[:len(polys)-1],
		body:         polys[len(polys)-1],
	}
}

// tensorMultiplier writes in out the sum of the products of the given pairs of polynomials of
// the two inputs.
type tensorMultiplier func(pairs [][2]int, out []torus.Int128)

// tensorTerm is an output polynomial of the tensor product: the (possibly negated) sum of the
// products of pairs of input polynomials, indexed with the body at k.
type tensorTerm struct {
	pairs  [][2]int
	negate bool
}

// tensorTerms returns the output polynomials of the tensor product of two ciphertexts of
// dimension k, masks first and body last.
func tensorTerms(k int) (terms []tensorTerm) {

	terms = make([]tensorTerm, 0, k*(k+3)/2+1)

	// linear terms, paired with S_i
	for i := 0; i < k; i++ {
		terms = append(terms, tensorTerm{pairs: [][2]int{{i, k}, {k, i}}})
	}

	// squared terms, paired with S_i^2
	for i := 0; i < k; i++ {
		terms = append(terms, tensorTerm{pairs: [][2]int{{i, i}}, negate: true})
	}

	// cross terms, paired with S_i S_j
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			terms = append(terms, tensorTerm{pairs: [][2]int{{i, j}, {j, i}}, negate: true})
		}
	}

	return append(terms, tensorTerm{pairs: [][2]int{{k, k}}})
}

// logScale returns log2(scale) if scale is a power of two in [2^-64, 2^64].
func logScale(scale float64) (int, bool) {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return 0, false
	}
	frac, exp := math.Frexp(scale)
	if frac != 0.5 {
		return 0, false
	}
	exp--
	if exp < -64 || exp > 64 {
		return 0, false
	}
	return exp, true
}
