package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single family member in the golden file.
type GoldenData struct {
	Family       string   `json:"family"`
	Args         []int    `json:"args"`
	Coefficients []string `json:"coefficients"`
}

// tables holds members whose coefficients are taken from standard
// references rather than recomputed here.
var tables = []GoldenData{
	{"u", []int{3}, []string{"0", "-4", "0", "8"}},
	{"u", []int{4}, []string{"1", "0", "-12", "0", "16"}},
	{"p", []int{2}, []string{"-1", "0", "3"}},
	{"p", []int{3}, []string{"0", "-3", "0", "5"}},
	{"p", []int{4}, []string{"3", "0", "-30", "0", "35"}},
	{"c", []int{1}, []string{"-1", "1"}},
	{"c", []int{4}, []string{"1", "0", "1"}},
	{"c", []int{6}, []string{"1", "-1", "1"}},
	{"c", []int{12}, []string{"1", "0", "-1", "0", "1"}},
	{"c", []int{15}, []string{"1", "-1", "0", "1", "-1", "1", "0", "-1", "1"}},
	{"s", []int{1}, []string{"-2", "0", "1"}},
	{"s", []int{2}, []string{"1", "0", "-10", "0", "1"}},
	{"b", []int{2}, []string{"1", "-6", "6"}},
	{"b", []int{3}, []string{"0", "1", "-3", "2"}},
}

func main() {
	outputDir := flag.String("out", "internal/poly/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "families_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Println("Generating golden data...")

	data := []GoldenData{
		member("a", []int{3}, easy(3)),
		member("t", []int{4}, chebyshevT(4)),
		member("t", []int{5}, chebyshevT(5)),
	}
	data = append(data, tables...)
	data = append(data,
		member("w", []int{3}, wilkinson(3)),
		member("w", []int{4}, wilkinson(4)),
		member("e", []int{3}, expNumerator(3)),
		member("m", []int{3, 1}, mignotte(3, 1)),
		member("m", []int{4, 2}, mignotte(4, 2)),
	)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s (%d entries)\n", filename, len(data))
}

func member(family string, args []int, coeffs []*big.Int) GoldenData {
	out := make([]string, len(coeffs))
	for i, c := range coeffs {
		out[i] = c.String()
	}
	fmt.Printf("Generated %s %v\n", family, args)
	return GoldenData{Family: family, Args: args, Coefficients: out}
}

func easy(n int) []*big.Int {
	out := make([]*big.Int, n+1)
	for k := range out {
		out[k] = big.NewInt(int64(k + 1))
	}
	return out
}

// chebyshevT uses the explicit sum
// T_n(x) = sum_k (-1)^k n/(n-k) C(n-k, k) 2^(n-2k-1) x^(n-2k), n >= 1.
// This serves as our "Oracle" independent of the recurrence.
func chebyshevT(n int) []*big.Int {
	out := make([]*big.Int, n+1)
	for i := range out {
		out[i] = new(big.Int)
	}
	for k := 0; 2*k <= n; k++ {
		c := new(big.Int).Binomial(int64(n-k), int64(k))
		c.Mul(c, big.NewInt(int64(n)))
		c.Quo(c, big.NewInt(int64(n-k)))
		c.Lsh(c, uint(n-2*k)).Rsh(c, 1)
		if k%2 == 1 {
			c.Neg(c)
		}
		out[n-2*k] = c
	}
	return out
}

// wilkinson uses elementary symmetric sums of 1..n: the coefficient of
// x^(n-k) is (-1)^k e_k(1, ..., n).
func wilkinson(n int) []*big.Int {
	e := make([]*big.Int, n+1)
	for i := range e {
		e[i] = new(big.Int)
	}
	e[0].SetInt64(1)
	for r := 1; r <= n; r++ {
		for k := r; k >= 1; k-- {
			e[k].Add(e[k], new(big.Int).Mul(e[k-1], big.NewInt(int64(r))))
		}
	}
	out := make([]*big.Int, n+1)
	for k := 0; k <= n; k++ {
		c := new(big.Int).Set(e[k])
		if k%2 == 1 {
			c.Neg(c)
		}
		out[n-k] = c
	}
	return out
}

func expNumerator(n int) []*big.Int {
	out := make([]*big.Int, n+1)
	for k := 0; k <= n; k++ {
		out[k] = new(big.Int).MulRange(int64(k+1), int64(n))
	}
	return out
}

func mignotte(n, k int) []*big.Int {
	out := make([]*big.Int, n+1)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i := 0; i <= k; i++ {
		c := new(big.Int).Binomial(int64(k), int64(i))
		out[i] = c.Mul(c, new(big.Int).Exp(big.NewInt(100), big.NewInt(int64(i)), nil))
	}
	out[n].SetInt64(1)
	return out
}
