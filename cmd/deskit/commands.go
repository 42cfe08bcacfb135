package deskit

import (
	"fmt"

	"github.com/arthur-debert/deskit/internal/version"
	"github.com/arthur-debert/deskit/pkg/commands"
	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		cfgFile   string
	)

	rootCmd := &cobra.Command{
		Use:     "deskit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig reads the configuration named by the persistent --config flag
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{Path: cfgFile})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	if cfg.Source != "" {
		log.Debug().Str("path", cfg.Source).Msg("Using config file")
	}
	return cfg, nil
}

// initEnvironment loads the configuration and wires the components
func initEnvironment(cmd *cobra.Command) (*commands.Environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	env, err := commands.NewEnvironment(cfg, commands.EnvironmentOptions{})
	if err != nil {
		return nil, fmt.Errorf(MsgErrEnvironment, err)
	}
	return env, nil
}

// newPrinter builds a printer for the command's --output flag
func newPrinter(cmd *cobra.Command, format string) (*output.Printer, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, f, isTerminal(out)), nil
}

// installedIDsCompletion completes uninstall arguments with installed identities
func installedIDsCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	env, err := initEnvironment(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	apps, err := commands.List(commands.ListOptions{Env: env})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	given := make(map[string]bool, len(args))
	for _, arg := range args {
		given[arg] = true
	}

	var ids []string
	for _, app := range apps {
		if !given[app.ID] {
			ids = append(ids, app.ID+"\t"+app.Name)
		}
	}

	return ids, cobra.ShellCompDirectiveNoFileComp
}

func newInstallCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "install <path|url>...",
		Aliases: []string{"i"},
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}

			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}

			log.Info().Strs("inputs", args).Msg("Installing")

			report := commands.Install(cmd.Context(), commands.InstallOptions{
				Env:    env,
				Inputs: args,
			})

			if err := printer.Install(report); err != nil {
				return err
			}

			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf(MsgErrInputsFailed, failed, len(report.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", string(output.FormatText), MsgFlagOutput)

	return cmd
}

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}

			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}

			apps, err := commands.List(commands.ListOptions{Env: env})
			if err != nil {
				return fmt.Errorf(MsgErrListApps, err)
			}

			return printer.Apps(apps)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", string(output.FormatText), MsgFlagOutput)

	return cmd
}

func newUninstallCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "uninstall <id|path|url>...",
		Aliases:           []string{"u"},
		Short:             MsgUninstallShort,
		Long:              MsgUninstallLong,
		Example:           MsgUninstallExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: installedIDsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}

			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}

			report, err := commands.Uninstall(cmd.Context(), commands.UninstallOptions{
				Env:    env,
				Inputs: args,
			})
			if err != nil {
				return err
			}

			if err := printer.Uninstall(report); err != nil {
				return err
			}

			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf(MsgErrInputsFailed, failed, len(report.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", string(output.FormatText), MsgFlagOutput)

	return cmd
}

func newConfigCmd() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			content, err := config.Dump(cfg)
			if err != nil {
				return fmt.Errorf(MsgErrDumpConfig, err)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			}
			return nil
		},
	}
}
