package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cerbhq/cerberus/pkg/db"
	"github.com/cerbhq/cerberus/pkg/keys"
	gormstore "github.com/cerbhq/cerberus/pkg/server/store/gorm"
)

// tenantCreateCmd represents the tenant create command
var tenantCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tenant with a tenant-wide API key",
	Long: `Create a tenant with a tenant-wide API key.

This is the CLI equivalent of the bootstrap endpoint: it creates the tenant
and mints an unscoped API key for it. The key's plaintext is printed to
STDOUT exactly once and cannot be retrieved again.

Example:
  cerberusctl tenant create Acme`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		keyName, _ := cmd.Flags().GetString("key-name")

		plaintext, err := createTenant(name, keyName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create tenant: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created tenant '%s'\n", name)
		fmt.Fprintln(os.Stderr, "Store this API key securely. It cannot be retrieved again.")
		fmt.Printf("API key for %s: %s\n", name, plaintext)
	},
}

func init() {
	tenantCmd.AddCommand(tenantCreateCmd)
	tenantCreateCmd.Flags().StringP("key-name", "k", "bootstrap", "name for the minted API key")
}

func createTenant(name, keyName string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	tenants := gormstore.NewTenantStore(database)
	projects := gormstore.NewProjectStore(database)
	apiKeys := gormstore.NewApiKeyStore(database)

	tenant, err := tenants.CreateTenant(name)
	if err != nil {
		return "", fmt.Errorf("failed to create tenant: %w", err)
	}

	keyService := keys.NewService(apiKeys, tenants, projects, zap.NewNop())
	defer keyService.Close()

	plaintext, _, err := keyService.Mint(keyName, tenant.ID, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to mint api key: %w", err)
	}

	return plaintext, nil
}
