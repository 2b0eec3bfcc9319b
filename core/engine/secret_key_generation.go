package engine

import (
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/parameters"
)

// LweSecretKeyGenerationErrors is the error set of LweSecretKeyGenerationEngine.
var LweSecretKeyGenerationErrors = NewErrorSet("LweSecretKeyGeneration",
	KindSpec{"NullLweDimension", "The LWE dimension must be greater than zero."},
)

var ErrLweSecretKeyGenerationNullLweDimension = LweSecretKeyGenerationErrors.Kind("NullLweDimension")

// CheckLweSecretKeyGeneration validates the preconditions of an LWE secret key generation.
func CheckLweSecretKeyGeneration(dimension parameters.LweDimension) error {
	if dimension <= 0 {
		return LweSecretKeyGenerationErrors.New(ErrLweSecretKeyGenerationNullLweDimension)
	}
	return nil
}

// LweSecretKeyGenerationEngine is implemented by engines generating LWE secret keys.
type LweSecretKeyGenerationEngine[SecretKey entity.LweSecretKeyEntity] interface {
	AbstractEngine
	LweSecretKeyGenerationUncheckedEngine[SecretKey]

	// GenerateNewLweSecretKey returns a new LWE secret key of the given dimension with
	// coefficients sampled from the given distribution.
	GenerateNewLweSecretKey(dimension parameters.LweDimension, distribution entity.KeyDistribution) (SecretKey, error)
}

// LweSecretKeyGenerationUncheckedEngine carries the unchecked LWE secret key generation.
type LweSecretKeyGenerationUncheckedEngine[SecretKey entity.LweSecretKeyEntity] interface {
	// GenerateNewLweSecretKeyUnchecked is the unchecked variant of GenerateNewLweSecretKey.
	// The caller must ensure that the dimension is greater than zero.
	GenerateNewLweSecretKeyUnchecked(dimension parameters.LweDimension, distribution entity.KeyDistribution) SecretKey
}

// GlweSecretKeyGenerationErrors is the error set of GlweSecretKeyGenerationEngine.
var GlweSecretKeyGenerationErrors = NewErrorSet("GlweSecretKeyGeneration",
	KindSpec{"NullGlweDimension", "The GLWE dimension must be greater than zero."},
	KindSpec{"NullPolynomialSize", "The polynomial size must be greater than zero."},
)

var (
	ErrGlweSecretKeyGenerationNullGlweDimension  = GlweSecretKeyGenerationErrors.Kind("NullGlweDimension")
	ErrGlweSecretKeyGenerationNullPolynomialSize = GlweSecretKeyGenerationErrors.Kind("NullPolynomialSize")
)

// CheckGlweSecretKeyGeneration validates the preconditions of a GLWE secret key generation.
func CheckGlweSecretKeyGeneration(dimension parameters.GlweDimension, size parameters.PolynomialSize) error {
	errs := GlweSecretKeyGenerationErrors
	if dimension <= 0 {
		return errs.New(ErrGlweSecretKeyGenerationNullGlweDimension)
	}
	if size <= 0 {
		return errs.New(ErrGlweSecretKeyGenerationNullPolynomialSize)
	}
	return nil
}

// GlweSecretKeyGenerationEngine is implemented by engines generating GLWE secret keys.
type GlweSecretKeyGenerationEngine[SecretKey entity.GlweSecretKeyEntity] interface {
	AbstractEngine
	GlweSecretKeyGenerationUncheckedEngine[SecretKey]

	// GenerateNewGlweSecretKey returns a new GLWE secret key of the given dimension and polynomial
	// size with coefficients sampled from the given distribution.
	GenerateNewGlweSecretKey(dimension parameters.GlweDimension, size parameters.PolynomialSize, distribution entity.KeyDistribution) (SecretKey, error)
}

// GlweSecretKeyGenerationUncheckedEngine carries the unchecked GLWE secret key generation.
type GlweSecretKeyGenerationUncheckedEngine[SecretKey entity.GlweSecretKeyEntity] interface {
	// GenerateNewGlweSecretKeyUnchecked is the unchecked variant of GenerateNewGlweSecretKey.
	// The caller must ensure that the dimension and the polynomial size are greater than zero.
	GenerateNewGlweSecretKeyUnchecked(dimension parameters.GlweDimension, size parameters.PolynomialSize, distribution entity.KeyDistribution) SecretKey
}
