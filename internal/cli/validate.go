package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/velox-search/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "validate <mapping.yaml>",
		Short:         "Validate a field mapping",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.Load(args[0])
			if err != nil {
				return err
			}
			rootOpts.Logger(cmd.ErrOrStderr()).Debug("mapping loaded",
				"path", args[0],
				"dialect", m.Dialect,
				"fields", len(m.Fields),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: fieldset %q with %d fields is valid\n", args[0], m.FieldSet, len(m.Fields))
			return err
		},
	}
}
