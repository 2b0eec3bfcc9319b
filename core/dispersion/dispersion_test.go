package dispersion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispersion(t *testing.T) {

	t.Run("Conversions", func(t *testing.T) {
		for _, d := range []DispersionParameter{
			Variance(math.Exp2(-50)),
			StandardDev(math.Exp2(-25)),
			LogStandardDev(-25),
		} {
			require.InDelta(t, math.Exp2(-50), d.GetVariance(), math.Exp2(-60))
			require.InDelta(t, math.Exp2(-25), d.GetStandardDev(), math.Exp2(-40))
			require.InDelta(t, -25.0, d.GetLogStandardDev(), 1e-9)
			require.InDelta(t, math.Exp2(39), d.GetModularStandardDev(64), 1e-3)
			require.InDelta(t, math.Exp2(78), d.GetModularVariance(64), math.Exp2(40))
			require.InDelta(t, 7.0, d.GetModularLogStandardDev(32), 1e-9)
		}
	})

	t.Run("VarianceFromModular", func(t *testing.T) {
		v := VarianceFromModular(math.Exp2(20), 32)
		require.InDelta(t, math.Exp2(-44), v.GetVariance(), math.Exp2(-60))
		require.InDelta(t, math.Exp2(20), v.GetModularVariance(32), 1e-6)
		require.Equal(t, Variance(0.25), ToVariance(StandardDev(0.5)))
	})
}
