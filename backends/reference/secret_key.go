package reference

import (
	"github.com/tuneinsight/fhecore/core/dispersion"
	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
	"github.com/tuneinsight/fhecore/core/torus"
)

// GenerateNewLweSecretKey returns a new LWE secret key.
func (eng *Engine[T]) GenerateNewLweSecretKey(dimension parameters.LweDimension, distribution entity.KeyDistribution) (*LweSecretKey[T], error) {
	if err := engine.CheckLweSecretKeyGeneration(dimension); err != nil {
		return nil, err
	}
	return eng.GenerateNewLweSecretKeyUnchecked(dimension, distribution), nil
}

// GenerateNewLweSecretKeyUnchecked returns a new LWE secret key.
func (eng *Engine[T]) GenerateNewLweSecretKeyUnchecked(dimension parameters.LweDimension, distribution entity.KeyDistribution) *LweSecretKey[T] {
	coefficients := make([]T, dimension)
	eng.sampler.ReadKey(coefficients, distribution.KeyKind())
	return &LweSecretKey[T]{handle: eng.register(entity.LweSecretKeyKind), distribution: distribution, coefficients: coefficients}
}

// GenerateNewGlweSecretKey returns a new GLWE secret key.
func (eng *Engine[T]) GenerateNewGlweSecretKey(dimension parameters.GlweDimension, size parameters.PolynomialSize, distribution entity.KeyDistribution) (*GlweSecretKey[T], error) {
	if err := engine.CheckGlweSecretKeyGeneration(dimension, size); err != nil {
		return nil, err
	}
	return eng.GenerateNewGlweSecretKeyUnchecked(dimension, size, distribution), nil
}

// GenerateNewGlweSecretKeyUnchecked returns a new GLWE secret key.
func (eng *Engine[T]) GenerateNewGlweSecretKeyUnchecked(dimension parameters.GlweDimension, size parameters.PolynomialSize, distribution entity.KeyDistribution) *GlweSecretKey[T] {
	polynomials := make([][]T, dimension)
	for i := range polynomials {
		polynomials[i] = make([]T, size)
		eng.sampler.ReadKey(polynomials[i], distribution.KeyKind())
	}
	return &GlweSecretKey[T]{handle: eng.register(entity.GlweSecretKeyKind), distribution: distribution, polynomials: polynomials}
}

// GenerateNewLweKeyswitchKey returns a new keyswitch key from the input key to the output key.
func (eng *Engine[T]) GenerateNewLweKeyswitchKey(input, output *LweSecretKey[T], baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, noise dispersion.DispersionParameter) (*LweKeyswitchKey[T], error) {
	if err := engine.CheckLweKeyswitchKeyGeneration(baseLog, levels, precision[T]()); err != nil {
		return nil, err
	}
	if err := eng.alive(input, output); err != nil {
		return nil, engine.LweKeyswitchKeyGenerationErrors.Engine(err)
	}
	return eng.GenerateNewLweKeyswitchKeyUnchecked(input, output, baseLog, levels, noise), nil
}

// GenerateNewLweKeyswitchKeyUnchecked returns a new keyswitch key from the input key to the output key.
func (eng *Engine[T]) GenerateNewLweKeyswitchKeyUnchecked(input, output *LweSecretKey[T], baseLog parameters.DecompositionBaseLog, levels parameters.DecompositionLevelCount, noise dispersion.DispersionParameter) *LweKeyswitchKey[T] {

	ksk := &LweKeyswitchKey[T]{
		handle:   eng.register(entity.LweKeyswitchKeyKind),
		input:    input.distribution,
		output:   output.distribution,
		inputDim: input.LweDimension(),
		baseLog:  baseLog,
		levels:   levels,
	}

	rows := int(input.LweDimension()) * int(levels)
	ksk.masks = make([][]T, rows)
	ksk.bodies = make([]T, rows)

	for i, si := range input.coefficients {
		for j := 0; j < int(levels); j++ {
			row := i*int(levels) + j
			ksk.masks[row] = make([]T, len(output.coefficients))
			ksk.bodies[row] = eng.encryptLwe(output.coefficients, ksk.masks[row], torus.GadgetValue(si, int(baseLog), j+1), noise)
		}
	}

	return ksk
}
