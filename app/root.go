// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "propertychain-admin",
	Short: "PropertyChain Admin is the security gateway for the PropertyChain admin area",
	Long: `PropertyChain Admin fronts the administrative area of the PropertyChain
real-estate tokenization platform. It enforces role-based access control on
admin routes, tracks session inactivity with warn-then-expire semantics,
gates two-factor-enabled accounts behind code verification and keeps an
audit trail of security-relevant actions.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
