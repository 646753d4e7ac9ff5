package reconcile

import (
	"fmt"
	"strings"
)

// RequiredRule returns the validation rule for an argument slot. Optional slots accept
// any input.
func RequiredRule(name string, required bool) func(string) error {
	return func(v string) error {
		if required && strings.TrimSpace(v) == "" {
			return ErrEmptyValue.Msg(fmt.Sprintf("argument %s cannot be empty.", name))
		}
		return nil
	}
}

// NonEmptyRule returns the validation rule for an environment variable.
func NonEmptyRule(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return ErrEmptyValue.Msg(fmt.Sprintf("%s cannot be empty.", name))
		}
		return nil
	}
}
