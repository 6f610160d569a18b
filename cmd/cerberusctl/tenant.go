package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// tenantCmd represents the tenant command
var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
	Long:  `Manage organization tenants.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'tenant' requires a subcommand (create)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(tenantCmd)
}
