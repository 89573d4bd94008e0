package dung

import "fmt"

// SkepticalAcceptance reports whether arg is a member of every extension
// under the given semantics. With zero extensions the condition is vacuously
// true only for stable semantics with no stable extension; callers should
// check extension existence when that distinction matters.
func (af *AF) SkepticalAcceptance(arg string, sem Semantics) (bool, error) {
	exts, err := af.acceptanceExtensions(arg, sem)
	if err != nil {
		return false, err
	}
	for _, ext := range exts {
		if !contains(ext, arg) {
			return false, nil
		}
	}
	return true, nil
}

// CredulousAcceptance reports whether arg is a member of at least one
// extension under the given semantics.
func (af *AF) CredulousAcceptance(arg string, sem Semantics) (bool, error) {
	exts, err := af.acceptanceExtensions(arg, sem)
	if err != nil {
		return false, err
	}
	for _, ext := range exts {
		if contains(ext, arg) {
			return true, nil
		}
	}
	return false, nil
}

func (af *AF) acceptanceExtensions(arg string, sem Semantics) ([][]string, error) {
	if !af.argSet[arg] {
		return nil, fmt.Errorf("%q: %w", arg, ErrUnknownArgument)
	}
	return af.Extensions(sem)
}

func contains(ext []string, arg string) bool {
	for _, a := range ext {
		if a == arg {
			return true
		}
	}
	return false
}
