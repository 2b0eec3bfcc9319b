package reference

import (
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

// The methods of this file build entities from raw containers and read their raw content back.
// They are the bridge used to synthesize entities from backend-independent prototypes, and
// perform no validation: the caller must provide consistent containers. Containers are copied.

func clone2D[T torus.Unsigned](in [][]T) (out [][]T) {
	out = make([][]T, len(in))
	for i := range in {
		out[i] = append([]T{}, in[i]...)
	}
	return
}

// CreateLweSecretKeyFromContainer returns a new LWE secret key with the given coefficients.
func (eng *Engine[T]) CreateLweSecretKeyFromContainer(distribution entity.KeyDistribution, coefficients []T) *LweSecretKey[T] {
	return &LweSecretKey[T]{handle: eng.register(entity.LweSecretKeyKind), distribution: distribution, coefficients: append([]T{}, coefficients...)}
}

// RetrieveLweSecretKeyContainer returns the coefficients of the key.
func (eng *Engine[T]) RetrieveLweSecretKeyContainer(sk *LweSecretKey[T]) []T {
	return append([]T{}, sk.coefficients...)
}

// CreateGlweSecretKeyFromContainer returns a new GLWE secret key with the given polynomials.
func (eng *Engine[T]) CreateGlweSecretKeyFromContainer(distribution entity.KeyDistribution, polynomials [][]T) *GlweSecretKey[T] {
	return &GlweSecretKey[T]{handle: eng.register(entity.GlweSecretKeyKind), distribution: distribution, polynomials: clone2D(polynomials)}
}

// RetrieveGlweSecretKeyContainer returns the polynomials of the key.
func (eng *Engine[T]) RetrieveGlweSecretKeyContainer(sk *GlweSecretKey[T]) [][]T {
	return clone2D(sk.polynomials)
}

// CreateLweCiphertextFromContainer returns a new LWE ciphertext with the given mask and body.
func (eng *Engine[T]) CreateLweCiphertextFromContainer(distribution entity.KeyDistribution, mask []T, body T) *LweCiphertext[T] {
	return &LweCiphertext[T]{handle: eng.register(entity.LweCiphertextKind), distribution: distribution, mask: append([]T{}, mask...), body: body}
}

// RetrieveLweCiphertextContainer returns the mask and the body of the ciphertext.
func (eng *Engine[T]) RetrieveLweCiphertextContainer(ct *LweCiphertext[T]) (mask []T, body T) {
	return append([]T{}, ct.mask...), ct.body
}

// CreateGlweCiphertextFromContainer returns a new GLWE ciphertext with the given masks and body.
func (eng *Engine[T]) CreateGlweCiphertextFromContainer(distribution entity.KeyDistribution, masks [][]T, body []T) *GlweCiphertext[T] {
	return &GlweCiphertext[T]{handle: eng.register(entity.GlweCiphertextKind), distribution: distribution, masks: clone2D(masks), body: append([]T{}, body...)}
}

// RetrieveGlweCiphertextContainer returns the masks and the body of the ciphertext.
func (eng *Engine[T]) RetrieveGlweCiphertextContainer(ct *GlweCiphertext[T]) (masks [][]T, body []T) {
	return clone2D(ct.masks), append([]T{}, ct.body...)
}

// CreateGgswCiphertextFromContainer returns a new GGSW ciphertext with the given rows, given as
// (k+1)*levels pairs of masks and body.
func (eng *Engine[T]) CreateGgswCiphertextFromContainer(distribution entity.KeyDistribution, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, masks [][][]T, bodies [][]T) *GgswCiphertext[T] {
	ct := &GgswCiphertext[T]{
		handle:       eng.register(entity.GgswCiphertextKind),
		distribution: distribution,
		baseLog:      baseLog,
		levels:       levels,
		rows:         make([]glwe[T], len(bodies)),
	}
	for i := range bodies {
		ct.rows[i] = glwe[T]{masks: clone2D(masks[i]), body: append([]T{}, bodies[i]...)}
	}
	return ct
}

// RetrieveGgswCiphertextContainer returns the masks and the bodies of the rows of the ciphertext.
func (eng *Engine[T]) RetrieveGgswCiphertextContainer(ct *GgswCiphertext[T]) (masks [][][]T, bodies [][]T) {
	masks = make([][][]T, len(ct.rows))
	bodies = make([][]T, len(ct.rows))
	for i, row := range ct.rows {
		masks[i] = clone2D(row.masks)
		bodies[i] = append([]T{}, row.body...)
	}
	return
}

// CreateLweKeyswitchKeyFromContainer returns a new keyswitch key with the given rows, given as
// InputLweDimension*levels pairs of mask and body.
func (eng *Engine[T]) CreateLweKeyswitchKeyFromContainer(input, output entity.KeyDistribution, baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, masks [][]T, bodies []T) *LweKeyswitchKey[T] {
	return &LweKeyswitchKey[T]{
		handle:   eng.register(entity.LweKeyswitchKeyKind),
		input:    input,
		output:   output,
		inputDim: parameters.LweDimension(len(bodies) / int(levels)),
		baseLog:  baseLog,
		levels:   levels,
		masks:    clone2D(masks),
		bodies:   append([]T{}, bodies...),
	}
}

// RetrieveLweKeyswitchKeyContainer returns the masks and the bodies of the rows of the key.
func (eng *Engine[T]) RetrieveLweKeyswitchKeyContainer(ksk *LweKeyswitchKey[T]) (masks [][]T, bodies []T) {
	return clone2D(ksk.masks), append([]T{}, ksk.bodies...)
}
