package order

import (
	"fmt"

	"jewelflow/internal/pkg/errs"
)

// Material is the metal an artifact is made of.
type Material int

const (
	// MaterialUnknown represents an invalid or undefined material.
	MaterialUnknown Material = iota

	// Gold artifacts additionally require a purity grade.
	Gold

	// Silver artifacts carry no purity grade.
	Silver
)

func getMaterialStrings() map[Material]string {
	return map[Material]string{
		MaterialUnknown: "Unknown",
		Gold:            "Gold",
		Silver:          "Silver",
	}
}

// MaterialFromString parses a material from its display name.
func MaterialFromString(s string) (Material, error) {
	switch s {
	case "Gold":
		return Gold, nil
	case "Silver":
		return Silver, nil
	default:
		return MaterialUnknown, errs.NewValueIsInvalidErrorWithCause("material",
			fmt.Errorf("%q is not a valid material", s))
	}
}

// Validate checks if the Material value is valid.
func (m Material) Validate() error {
	if m != Gold && m != Silver {
		return errs.NewValueIsInvalidErrorWithCause("material",
			fmt.Errorf("%d is not a valid material", m))
	}
	return nil
}

// String implements fmt.Stringer.
func (m Material) String() string {
	if str, ok := getMaterialStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Purity is the gold purity grade of an artifact. It is required for Gold
// artifacts and must be absent for any other material.
type Purity int

const (
	// PurityNone means no purity grade applies (non-gold artifacts).
	PurityNone Purity = iota

	// Purity24K is 24 karat gold.
	Purity24K

	// Purity22K is 22 karat gold.
	Purity22K

	// Purity18K is 18 karat gold.
	Purity18K
)

func getPurityStrings() map[Purity]string {
	return map[Purity]string{
		PurityNone: "",
		Purity24K:  "24K",
		Purity22K:  "22K",
		Purity18K:  "18K",
	}
}

// PurityFromString parses a purity grade from its display name.
// The empty string parses to PurityNone.
func PurityFromString(s string) (Purity, error) {
	switch s {
	case "":
		return PurityNone, nil
	case "24K":
		return Purity24K, nil
	case "22K":
		return Purity22K, nil
	case "18K":
		return Purity18K, nil
	default:
		return PurityNone, errs.NewValueIsInvalidErrorWithCause("purity",
			fmt.Errorf("%q is not a valid purity", s))
	}
}

// Validate checks if the Purity value is a known grade or PurityNone.
func (p Purity) Validate() error {
	if _, ok := getPurityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("purity",
			fmt.Errorf("%d is not a valid purity", p))
	}
	return nil
}

// String implements fmt.Stringer. PurityNone renders as the empty string.
func (p Purity) String() string {
	if str, ok := getPurityStrings()[p]; ok {
		return str
	}
	return ""
}
