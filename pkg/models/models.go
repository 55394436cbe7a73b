/*
Package models defines the JSON documents exchanged by polyroots.

They are used for:
- **CLI output** with -json and the batch summary.
- **HTTP responses** of the /roots, /families and /health endpoints.
*/
package models

// Root is one certified enclosure. Real and Imag are midpoint-radius
// intervals printed as "[mid +/- rad]", or the exact midpoint.
type Root struct {
	Real   string `json:"real"`    // Real part enclosure.
	Imag   string `json:"imag"`    // Imaginary part enclosure ("0" for snapped real roots).
	IsReal bool   `json:"is_real"` // True when the imaginary part is exactly zero.
	Text   string `json:"text"`    // The enclosure as "re + im*I".
}

// RootReport is the result of one certified isolation.
type RootReport struct {
	Polynomial     string `json:"polynomial"`      // Human-readable polynomial.
	Degree         int    `json:"degree"`          // Degree of the input.
	Deflation      int    `json:"deflation"`       // Maximal d with P(x) = Q(x^d).
	TargetBits     uint   `json:"target_bits"`     // Every radius is below 2^-target_bits.
	FinalPrecision uint   `json:"final_precision"` // Working precision of the certifying round.
	Rounds         int    `json:"rounds"`          // Number of precision rounds.
	Duration       string `json:"duration"`        // Wall time.
	RealRoots      int    `json:"real_roots"`      // Number of real roots.
	Roots          []Root `json:"roots,omitempty"` // Enclosures in display order, when printed.
	Error          string `json:"error,omitempty"` // Failure reason, for batch and server reports.
}

// Family describes a named polynomial family.
type Family struct {
	Letter      string `json:"letter"`
	Name        string `json:"name"`
	Usage       string `json:"usage"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}
