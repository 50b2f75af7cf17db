package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordique-ai/nordique/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the built-in defaults to a YAML config file. Refuses to
overwrite an existing file.`,
	RunE: runInit,
}

var initPath string

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initPath, "path", ".nordique.yaml",
		"where to write the config file")
}

func runInit(_ *cobra.Command, _ []string) error {
	if err := config.WriteDefault(initPath); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", initPath)
	return nil
}
