package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msaldanha/taskflow/validation"
)

var fieldSchemas = map[string]validation.Schema{
	"email":    validation.EmailSchema,
	"password": validation.PasswordSchema,
	"name":     validation.NameSchema,
	"phone":    validation.PhoneSchema,
	"url":      validation.URLSchema,
}

func schemaNames() []string {
	names := make([]string, 0, len(fieldSchemas))
	for n := range fieldSchemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("validate <%s> <value>", strings.Join(schemaNames(), "|")),
		Short: "check a value against a field schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, found := fieldSchemas[args[0]]
			if !found {
				return fmt.Errorf("unknown schema %q", args[0])
			}
			if er := schema.Validate(args[1]); er != nil {
				return validation.Collect(er)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func newSanitizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <text>",
		Short: "print text with markup and script fragments removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), validation.SanitizeInput(args[0]))
			return nil
		},
	}
}
