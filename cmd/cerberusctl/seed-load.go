package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/db"
	"github.com/cerbhq/cerberus/pkg/seed"
	gormstore "github.com/cerbhq/cerberus/pkg/server/store/gorm"
)

// seedLoadCmd represents the seed load command
var seedLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a seed file",
	Long: `Load a YAML seed file into Cerberus.

The seed file names a tenant and declares projects and animas under it.
Projects and animas that already exist are left alone; animas whose value
or description differ from the file are updated.

Example:
  cerberusctl seed load seed.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load seed: %v\n", err)
			os.Exit(1)
		}

		result, err := loadSeedFile(database, filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load seed: %v\n", err)
			os.Exit(1)
		}

		printSeedResult(result)
	},
}

func init() {
	seedCmd.AddCommand(seedLoadCmd)
}

func loadSeedFile(database *gorm.DB, filename string) (*seed.Result, error) {
	loader := seed.NewLoader(
		gormstore.NewTenantStore(database),
		gormstore.NewProjectStore(database),
		gormstore.NewAnimaStore(database),
	)
	return loader.LoadFromFile(filename)
}

func printSeedResult(result *seed.Result) {
	fmt.Println("Seed loaded successfully")
	fmt.Printf("Created %d project(s)\n", result.ProjectsCreated)
	fmt.Printf("Created %d anima(s), updated %d\n", result.AnimasCreated, result.AnimasUpdated)
}
