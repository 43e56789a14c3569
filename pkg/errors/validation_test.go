package errors

import (
	"strings"
	"testing"
)

func TestValidateMoleculeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "caffeine", false},
		{"WithDashes", "beta-carotene", false},
		{"WithDigits", "2-propanol", false},
		{"Empty", "", true},
		{"PathTraversal", "../etc/passwd", true},
		{"Slash", "a/b", true},
		{"Backslash", `a\b`, true},
		{"NullByte", "a\x00b", true},
		{"ControlChar", "a\nb", true},
		{"TooLong", strings.Repeat("x", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMoleculeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMoleculeName(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidMolecule) {
				t.Errorf("wrong code: %v", GetCode(err))
			}
		})
	}
}

func TestValidateAtomSymbol(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"C", false},
		{"Cl", false},
		{"c", false},
		{"n", false},
		{"[NH4+]", false},
		{"", false}, // empty falls back to the default atom
		{"CL", true},
		{"1C", true},
		{"[", true},
		{"C l", true},
	}

	for _, tt := range tests {
		if err := ValidateAtomSymbol(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateAtomSymbol(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateBondSymbol(t *testing.T) {
	for _, ok := range []string{"", "-", "=", "#", ":", "/", `\`, "."} {
		if err := ValidateBondSymbol(ok); err != nil {
			t.Errorf("ValidateBondSymbol(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"~", "==", "x"} {
		if err := ValidateBondSymbol(bad); err == nil {
			t.Errorf("ValidateBondSymbol(%q) = nil, want error", bad)
		}
	}
}

func TestValidateRingNumber(t *testing.T) {
	if err := ValidateRingNumber(1); err != nil {
		t.Errorf("ValidateRingNumber(1) = %v", err)
	}
	if err := ValidateRingNumber(12); err != nil {
		t.Errorf("ValidateRingNumber(12) = %v", err)
	}
	for _, bad := range []int{0, -1} {
		if err := ValidateRingNumber(bad); err == nil {
			t.Errorf("ValidateRingNumber(%d) = nil, want error", bad)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"molecules/caffeine.json", false},
		{"out.svg", false},
		{"", true},
		{"a/../b", true},
		{"a\x00b", true},
		{strings.Repeat("x", 501), true},
	}

	for _, tt := range tests {
		if err := ValidatePath(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
