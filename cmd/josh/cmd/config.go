package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshsim/joshc/internal/joshconfig"
	"github.com/joshsim/joshc/internal/joshexport"
	"github.com/joshsim/joshc/internal/joshvalue"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect a .jshc configuration document",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file.jshc]",
	Short: "Load a config document and list the dotted names it resolves",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

var configGetCmd = &cobra.Command{
	Use:   "get [file.jshc] [name]",
	Short: "Resolve one dotted config name and print its value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigGet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configGetCmd)
}

func loadConfig(path string) (*joshconfig.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	factory := joshvalue.NewFactory(false)
	provider, err := joshconfig.Load(data, factory)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func runConfigValidate(_ *cobra.Command, args []string) error {
	log := logger()
	provider, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	names := joshexport.SortedColumns(provider.Names())
	log.Info("loaded %d config entries from %s", len(names), args[0])
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	provider, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	value, ok := provider.GetConfigOptional(args[1])
	if !ok {
		return fmt.Errorf("no config entry named %q", args[1])
	}
	fmt.Println(value.String())
	return nil
}
