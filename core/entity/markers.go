package entity

import (
	"github.com/tuneinsight/fhecore/core/npe"
)

// KeyDistribution is the marker identifying the distribution of the secret key under which an
// entity is encrypted. The set of markers is closed: BinaryKeyDistribution,
// TernaryKeyDistribution and GaussianKeyDistribution.
type KeyDistribution interface {
	// KeyKind returns the noise formula kind of the distribution.
	KeyKind() npe.KeyKind
	String() string
	isKeyDistribution()
}

// BinaryKeyDistribution marks entities encrypted under keys with coefficients in {0, 1}.
type BinaryKeyDistribution struct{}

// TernaryKeyDistribution marks entities encrypted under keys with coefficients in {-1, 0, 1}.
type TernaryKeyDistribution struct{}

// GaussianKeyDistribution marks entities encrypted under keys with Gaussian coefficients.
type GaussianKeyDistribution struct{}

var (
	Binary   KeyDistribution = BinaryKeyDistribution{}
	Ternary  KeyDistribution = TernaryKeyDistribution{}
	Gaussian KeyDistribution = GaussianKeyDistribution{}
)

// KeyDistributions lists all the key distribution markers.
var KeyDistributions = []KeyDistribution{Binary, Ternary, Gaussian}

func (BinaryKeyDistribution) KeyKind() npe.KeyKind   { return npe.Binary }
func (TernaryKeyDistribution) KeyKind() npe.KeyKind  { return npe.Ternary }
func (GaussianKeyDistribution) KeyKind() npe.KeyKind { return npe.Gaussian }

func (BinaryKeyDistribution) String() string   { return "Binary" }
func (TernaryKeyDistribution) String() string  { return "Ternary" }
func (GaussianKeyDistribution) String() string { return "Gaussian" }

func (BinaryKeyDistribution) isKeyDistribution()   {}
func (TernaryKeyDistribution) isKeyDistribution()  {}
func (GaussianKeyDistribution) isKeyDistribution() {}

// ParseKeyDistribution returns the marker with the given name.
func ParseKeyDistribution(name string) (KeyDistribution, bool) {
	for _, kd := range KeyDistributions {
		if kd.String() == name {
			return kd, true
		}
	}
	return nil, false
}

// Precision is the marker identifying the raw numeric type of the values held by an entity.
// The set of markers is closed: Precision32, Precision64 and PrecisionF64.
type Precision interface {
	// Bits returns the bit-size of the raw type.
	Bits() int
	// IsFloat returns true for floating point raw types.
	IsFloat() bool
	String() string
	isPrecision()
}

// Precision32 marks entities holding values of Z_{2^32} as uint32.
type Precision32 struct{}

// Precision64 marks entities holding values of Z_{2^64} as uint64.
type Precision64 struct{}

// PrecisionF64 marks entities holding float64 values.
type PrecisionF64 struct{}

func (Precision32) Bits() int  { return 32 }
func (Precision64) Bits() int  { return 64 }
func (PrecisionF64) Bits() int { return 64 }

func (Precision32) IsFloat() bool  { return false }
func (Precision64) IsFloat() bool  { return false }
func (PrecisionF64) IsFloat() bool { return true }

func (Precision32) String() string  { return "32" }
func (Precision64) String() string  { return "64" }
func (PrecisionF64) String() string { return "F64" }

func (Precision32) isPrecision()  {}
func (Precision64) isPrecision()  {}
func (PrecisionF64) isPrecision() {}

// PrecisionOf returns the marker of the raw type T.
func PrecisionOf[T Raw]() Precision {
	var x T
	switch any(x).(type) {
	case uint32:
		return Precision32{}
	case uint64:
		return Precision64{}
	default:
		return PrecisionF64{}
	}
}

// Raw is the constraint satisfied by the raw numeric types of entities.
type Raw interface {
	uint32 | uint64 | float64
}
