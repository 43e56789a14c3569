package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateMoleculeName validates a molecule library name for safety and
// correctness. It rejects names that could be used for path traversal or
// injection when the name ends up in file paths or store keys.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateMoleculeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMolecule, "molecule name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidMolecule, "molecule name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMolecule, "molecule name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"/",    // Names become file basenames and store keys
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidMolecule, "molecule name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// atomSymbolRegex matches atom symbols the writer will emit verbatim:
// an element symbol (uppercase letter, optional lowercase letter), a
// lowercase aromatic symbol, or a bracket atom expression.
var atomSymbolRegex = regexp.MustCompile(`^([A-Z][a-z]?|[a-z]{1,2}|\[[^\[\]]+\])$`)

// ValidateAtomSymbol validates an atom symbol for document input.
// An empty symbol is allowed: the writer substitutes the default atom.
func ValidateAtomSymbol(symbol string) error {
	if symbol == "" {
		return nil
	}
	if !atomSymbolRegex.MatchString(symbol) {
		return New(ErrCodeInvalidDocument, "invalid atom symbol: %q", symbol)
	}
	return nil
}

// validBondSymbols is the set of bond symbols the notation understands.
// The empty string stands for a single bond.
var validBondSymbols = map[string]bool{
	"": true, "-": true, "=": true, "#": true, ":": true, "/": true, "\\": true, ".": true,
}

// ValidateBondSymbol validates a bond symbol for document input.
func ValidateBondSymbol(symbol string) error {
	if !validBondSymbols[symbol] {
		return New(ErrCodeInvalidDocument, "invalid bond symbol: %q", symbol)
	}
	return nil
}

// ValidateRingNumber validates a ring-closure number. The writer emits
// numbers as plain decimal digits, so they must be positive; multi-digit
// escaping is an external concern.
func ValidateRingNumber(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidDocument, "ring number must be positive, got %d", n)
	}
	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
