package poly

import (
	"fmt"
	"math/big"
	"slices"
)

// Family describes a named sequence of test polynomials.
type Family struct {
	// Letter selects the family on the command line.
	Letter string
	// Name is a short human-readable name.
	Name string
	// Usage shows the arguments, e.g. "m <n> <k>".
	Usage string
	// Description explains what the family builds.
	Description string
	// Arity is the number of integer arguments.
	Arity int
	// Build constructs the polynomial from validated arguments.
	Build func(args []int) (Int, error)
}

// MaxFamilyIndex bounds the size argument of every family.
const MaxFamilyIndex = 100000

// MaxSwinnertonDyer bounds S_n, whose degree is 2^n.
const MaxSwinnertonDyer = 16

var families = []Family{
	{"a", "easy", "a <n>", "Easy polynomial 1 + 2x + ... + (n+1)x^n", 1, buildEasy},
	{"t", "chebyshev-t", "t <n>", "Chebyshev polynomial T_n", 1, buildChebyshevT},
	{"u", "chebyshev-u", "u <n>", "Chebyshev polynomial U_n", 1, buildChebyshevU},
	{"p", "legendre", "p <n>", "Legendre polynomial P_n (numerator)", 1, buildLegendre},
	{"c", "cyclotomic", "c <n>", "Cyclotomic polynomial Phi_n", 1, buildCyclotomic},
	{"s", "swinnerton-dyer", "s <n>", "Swinnerton-Dyer polynomial S_n", 1, buildSwinnertonDyer},
	{"b", "bernoulli", "b <n>", "Bernoulli polynomial B_n (numerator)", 1, buildBernoulli},
	{"w", "wilkinson", "w <n>", "Wilkinson polynomial W_n = (x-1)(x-2)...(x-n)", 1, buildWilkinson},
	{"e", "exp", "e <n>", "Taylor series of exp(x) truncated to degree n (numerator)", 1, buildExp},
	{"m", "mignotte", "m <n> <k>", "The Mignotte-like polynomial x^n + (100x+1)^k, n > k", 2, buildMignotte},
}

// Families returns all registered families in display order.
func Families() []Family {
	return slices.Clone(families)
}

// LookupFamily returns the family selected by letter.
func LookupFamily(letter string) (Family, bool) {
	for _, f := range families {
		if f.Letter == letter {
			return f, true
		}
	}
	return Family{}, false
}

// BuildFamily constructs member args of the family selected by letter.
func BuildFamily(letter string, args ...int) (Int, error) {
	f, ok := LookupFamily(letter)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, letter)
	}
	if len(args) != f.Arity {
		return nil, fmt.Errorf("%w: family %s expects %d argument(s), got %d", ErrBadArgument, letter, f.Arity, len(args))
	}
	for _, a := range args {
		if a < 0 || a > MaxFamilyIndex {
			return nil, fmt.Errorf("%w: family %s argument %d out of range [0, %d]", ErrBadArgument, letter, a, MaxFamilyIndex)
		}
	}
	return f.Build(args)
}

func buildEasy(args []int) (Int, error) {
	n := args[0]
	p := Zeros(n + 1)
	for k := range p {
		p[k].SetInt64(int64(k + 1))
	}
	return p, nil
}

// chebyshev runs the recurrence P_{k+1} = 2x P_k - P_{k-1}.
func chebyshev(n int, p1 Int) Int {
	prev, cur := FromInt64s(1), p1
	if n == 0 {
		return prev
	}
	twoX := FromInt64s(0, 2)
	for k := 1; k < n; k++ {
		prev, cur = cur, twoX.Mul(cur).Sub(prev)
	}
	return cur
}

func buildChebyshevT(args []int) (Int, error) {
	return chebyshev(args[0], FromInt64s(0, 1)), nil
}

func buildChebyshevU(args []int) (Int, error) {
	return chebyshev(args[0], FromInt64s(0, 2)), nil
}

// buildLegendre uses (k+1) P_{k+1} = (2k+1) x P_k - k P_{k-1} over Q.
func buildLegendre(args []int) (Int, error) {
	n := args[0]
	prev := ratPoly{big.NewRat(1, 1)}
	if n == 0 {
		return prev.numerator(), nil
	}
	cur := ratPoly{new(big.Rat), big.NewRat(1, 1)}
	for k := 1; k < n; k++ {
		next := ratZeros(k + 2)
		a := big.NewRat(int64(2*k+1), int64(k+1))
		b := big.NewRat(int64(k), int64(k+1))
		for i := range next {
			t := new(big.Rat).Mul(a, cur.coeff(i-1))
			next[i].Sub(t, new(big.Rat).Mul(b, prev.coeff(i)))
		}
		prev, cur = cur, next
	}
	return cur.numerator(), nil
}

// buildCyclotomic computes Phi_n = prod_{d | n} (x^d - 1)^mu(n/d).
func buildCyclotomic(args []int) (Int, error) {
	n := args[0]
	if n < 1 {
		return nil, fmt.Errorf("%w: cyclotomic index must be >= 1", ErrBadArgument)
	}
	num, den := FromInt64s(1), FromInt64s(1)
	for d := 1; d <= n; d++ {
		if n%d != 0 {
			continue
		}
		f := Monomial(1, d).Sub(FromInt64s(1))
		switch mobius(n / d) {
		case 1:
			num = num.Mul(f)
		case -1:
			den = den.Mul(f)
		}
	}
	return num.DivExact(den)
}

func mobius(n int) int {
	mu := 1
	for p := 2; p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		n /= p
		if n%p == 0 {
			return 0
		}
		mu = -mu
	}
	if n > 1 {
		mu = -mu
	}
	return mu
}

// buildSwinnertonDyer computes the product of x + (±sqrt 2 ± sqrt 3 ± ...)
// over the first n primes. Each step writes S(x + sqrt p) = A + sqrt(p) B
// and takes S(x + sqrt p) S(x - sqrt p) = A^2 - p B^2.
func buildSwinnertonDyer(args []int) (Int, error) {
	n := args[0]
	if n > MaxSwinnertonDyer {
		return nil, fmt.Errorf("%w: Swinnerton-Dyer index must be <= %d", ErrBadArgument, MaxSwinnertonDyer)
	}
	s := FromInt64s(0, 1)
	x := FromInt64s(0, 1)
	for _, p := range firstPrimes(n) {
		pp := big.NewInt(int64(p))
		deg := s.Degree()
		a, b := Int{new(big.Int).Set(s[deg])}, Int{}
		for i := deg - 1; i >= 0; i-- {
			// (A + sqrt(p) B)(x + sqrt(p)) = (xA + pB) + sqrt(p)(A + xB)
			a, b = x.Mul(a).Add(b.Scale(pp)), a.Add(x.Mul(b))
			a = a.Add(Int{new(big.Int).Set(s[i])})
		}
		s = a.Mul(a).Sub(b.Mul(b).Scale(pp))
	}
	return s, nil
}

func firstPrimes(n int) []int {
	primes := make([]int, 0, n)
	for c := 2; len(primes) < n; c++ {
		prime := true
		for _, p := range primes {
			if p*p > c {
				break
			}
			if c%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			primes = append(primes, c)
		}
	}
	return primes
}

// buildBernoulli uses B_n(x) = sum_k C(n, k) B_{n-k} x^k.
func buildBernoulli(args []int) (Int, error) {
	n := args[0]
	b := bernoulliNumbers(n)
	p := ratZeros(n + 1)
	for k := 0; k <= n; k++ {
		p[k].Mul(new(big.Rat).SetInt(binomial(n, k)), b[n-k])
	}
	return p.numerator(), nil
}

func buildWilkinson(args []int) (Int, error) {
	p := FromInt64s(1)
	for k := 1; k <= args[0]; k++ {
		p = p.Mul(FromInt64s(int64(-k), 1))
	}
	return p, nil
}

// buildExp returns n! * sum_{k<=n} x^k/k!, whose coefficients n!/k! are
// coprime as a whole.
func buildExp(args []int) (Int, error) {
	n := args[0]
	p := Zeros(n + 1)
	c := big.NewInt(1)
	for k := n; k >= 0; k-- {
		p[k].Set(c)
		c.Mul(c, big.NewInt(int64(k)))
	}
	return p, nil
}

func buildMignotte(args []int) (Int, error) {
	n, k := args[0], args[1]
	if n <= k {
		return nil, fmt.Errorf("%w: Mignotte requires n > k, got n=%d k=%d", ErrBadArgument, n, k)
	}
	p := FromInt64s(1, 100).Pow(k)
	p = append(p, Zeros(n+1-len(p))...)
	p[n].SetInt64(1)
	return p, nil
}
