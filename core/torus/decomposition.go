package torus

// ClosestRepresentable returns the closest multiple of q/2^(baseLog*levels) to x.
func ClosestRepresentable[T Unsigned](x T, baseLog, levels int) T {
	nonRep := Bits[T]() - baseLog*levels
	if nonRep <= 0 {
		return x
	}
	bit := (x >> (nonRep - 1)) & 1
	return ((x >> nonRep) + bit) << nonRep
}

// DecomposeSigned writes in digits the signed decomposition of the closest representable
// value of x, such that sum_{j} digits[j] * q / 2^(baseLog*(j+1)) = ClosestRepresentable(x) mod q
// and every digit lies in [-2^(baseLog-1), 2^(baseLog-1)). digits[0] is the most significant level.
func DecomposeSigned[T Unsigned](x T, baseLog, levels int, digits []int64) {
	nonRep := Bits[T]() - baseLog*levels

	var c uint64
	if nonRep > 0 {
		c = uint64(x>>nonRep) + uint64((x>>(nonRep-1))&1)
	} else {
		c = uint64(x)
	}

	base := uint64(1) << baseLog
	half := base >> 1
	mask := base - 1

	for j := levels - 1; j >= 0; j-- {
		d := c & mask
		c >>= baseLog
		if d >= half {
			digits[j] = int64(d) - int64(base)
			c++
		} else {
			digits[j] = int64(d)
		}
	}
}

// GadgetValue returns the value q/2^(baseLog*level) mod q scaled by m, for level in [1, levels].
func GadgetValue[T Unsigned](m T, baseLog, level int) T {
	return m << (Bits[T]() - baseLog*level)
}
