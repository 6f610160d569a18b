package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cerberusctl",
	Short: "Cerberus secrets-management server",
	Long:  `Run and manage the Cerberus multi-tenant secrets-management server.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
