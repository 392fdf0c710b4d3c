package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addFlagValidation wraps a flag's value so invalid input is rejected at
// parse time instead of surfacing later as a configuration error.
func addFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.PersistentFlags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// oneOf builds a validator accepting the listed values or empty.
func oneOf(allowed ...string) func(string) error {
	return func(val string) error {
		if val == "" {
			return nil
		}
		for _, a := range allowed {
			if val == a {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q, must be one of: %s", val, strings.Join(allowed, ", "))
	}
}
