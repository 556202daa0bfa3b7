package utils

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GCD returns the greatest common divisor of a and b (always >= 0).
func GCD(a, b int) int {
	a, b = Abs(a), Abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of ns. Zero if any n is zero or ns
// is empty.
func LCM(ns ...int) int {
	if len(ns) == 0 {
		return 0
	}
	l := Abs(ns[0])
	for _, n := range ns[1:] {
		if l == 0 || n == 0 {
			return 0
		}
		l = l / GCD(l, n) * Abs(n)
	}
	return l
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
