package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Learting/leartools/config"
	"github.com/Learting/leartools/world"
)

func configCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "管理配置文件",
	}
	cmd.AddCommand(configInitCmd(g), configShowCmd(g))
	return cmd
}

func configInitCmd(g *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "写出默认配置文件",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if len(args) == 1 {
				path = args[0]
			}
			exists, err := world.Exists(path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}
			if err := config.Default().SaveConfig(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ 已写入默认配置: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "覆盖已存在的配置文件")
	return cmd
}

func configShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "显示合并文件与环境变量后的最终配置",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath, g.envFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "general.language     = %s\n", cfg.General.Language)
			fmt.Fprintf(out, "general.encoding     = %s\n", cfg.General.Encoding)
			fmt.Fprintf(out, "ui.colored_output    = %t\n", cfg.UI.ColoredOutput)
			fmt.Fprintf(out, "ui.progress_bar      = %t\n", cfg.UI.ProgressBar)
			fmt.Fprintf(out, "log.level            = %s\n", cfg.Log.Level)
			fmt.Fprintf(out, "log.format           = %s\n", cfg.Log.Format)
			return nil
		},
	}
}
