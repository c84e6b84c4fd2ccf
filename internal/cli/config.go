package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/volleytrieste/dbsetup/internal/config"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Manage dbsetup configuration.

Commands:
  init - Generate example configuration
  show - Print the effective configuration`,
	}

	cmd.AddCommand(c.newConfigInitCmd())
	cmd.AddCommand(c.newConfigShowCmd())

	return cmd
}

func (c *CLI) newConfigInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate example configuration",
		Long: `Generate an example configuration file with the default script list.

An existing file is never overwritten unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigInit(output, force)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dbsetup.yaml", "configuration file to create")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runConfigInit(output string, force bool) error {
	if err := config.WriteExample(output, force); err != nil {
		return err
	}

	absPath, _ := filepath.Abs(output)

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"status": "created",
			"path":   absPath,
		})
	}

	c.printf("✓ Configuration file created: %s\n", absPath)
	c.println("\nNext steps:")
	c.println("  1. Edit the scripts list to match your project")
	c.println("  2. Run 'dbsetup check' to verify every script is readable")
	c.println("  3. Run 'dbsetup' to print the SQL")

	return nil
}

func (c *CLI) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults, config file, environment and flags are applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigShow()
		},
	}
}

func (c *CLI) runConfigShow() error {
	if c.jsonOutput {
		return c.outputJSON(c.cfg)
	}

	data, err := c.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(data)
	return err
}
