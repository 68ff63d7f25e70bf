package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Learting/leartools/config"
	"github.com/Learting/leartools/interactive"
	"github.com/Learting/leartools/logging"
	"github.com/Learting/leartools/message"
	"github.com/Learting/leartools/reduce"
)

// residencesFlags residences 子命令的参数，显式指定时覆盖配置
type residencesFlags struct {
	lang      string
	encoding  string
	logLevel  string
	noColor   bool
	dryRun    bool
	overwrite bool
}

func residencesCmd(g *globalFlags) *cobra.Command {
	f := &residencesFlags{}
	cmd := &cobra.Command{
		Use:   "residences [residence-file source-world dest-world]",
		Short: "新建只包含领地覆盖区域的世界",
		Long: `读取 Residence 插件的领地存档，计算领地覆盖到的区域文件，
只把这些区域文件与 level.dat 复制到新的世界目录。

不带参数运行时会依次提示输入三个路径。

配置按以下顺序加载（后者覆盖前者）：
  1. 默认值
  2. 配置文件 (--config，默认 config.json)
  3. .env 文件与环境变量 (LEARTOOLS_GENERAL_LANGUAGE, LEARTOOLS_GENERAL_ENCODING,
     LEARTOOLS_UI_COLORED_OUTPUT, LEARTOOLS_UI_PROGRESS_BAR, LEARTOOLS_LOG_LEVEL,
     LEARTOOLS_LOG_FORMAT)
  4. 命令行参数`,
		Args: func(cmd *cobra.Command, args []string) error {
			if n := len(args); n != 0 && n != 3 {
				return fmt.Errorf("accepts 0 or 3 arg(s), received %d", n)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, f)
			if err != nil {
				return err
			}
			log := logging.New(os.Stderr, cfg.Log, cfg.UI.ColoredOutput)

			msg, err := message.LoadMessages(cfg.General.Language)
			if err != nil {
				log.Warn().Err(err).Msg("message override ignored")
			}
			console := interactive.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), msg, cfg.UI)
			console.Banner()

			opts := reduce.Options{
				Encoding: cfg.General.Encoding,
				DryRun:   f.dryRun,
				Confirm:  console.ConfirmOverwrite,
				Progress: console.Progress(),
			}
			if f.overwrite {
				opts.Confirm = func(string) (bool, error) { return true, nil }
			}
			if len(args) == 3 {
				opts.ResidenceFile, opts.SourceWorld, opts.DestWorld = args[0], args[1], args[2]
			} else {
				opts.ResidenceFile, opts.SourceWorld, opts.DestWorld, err = console.AskPaths()
				if err != nil {
					console.Fail(err)
					return errReported
				}
			}

			log.Debug().
				Str("residence_file", opts.ResidenceFile).
				Str("source", opts.SourceWorld).
				Str("dest", opts.DestWorld).
				Bool("dry_run", opts.DryRun).
				Msg("starting")
			console.Checking()
			if _, err := reduce.NewRunner(log, console).Run(opts); err != nil {
				log.Debug().Err(err).Msg("residences failed")
				console.Fail(err)
				return errReported
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.lang, "lang", "", "界面语言 (zh_CN, en_US)")
	flags.StringVar(&f.encoding, "encoding", "", "领地存档编码 (默认 gbk)")
	flags.StringVar(&f.logLevel, "log-level", "", "日志级别 (debug, info, warn, error)")
	flags.BoolVar(&f.noColor, "no-color", false, "关闭彩色输出")
	flags.BoolVar(&f.dryRun, "dry-run", false, "只显示将要复制的区域，不写入任何文件")
	flags.BoolVar(&f.overwrite, "overwrite", false, "输出目录已存在时直接替换，不再询问")
	return cmd
}

// loadConfig 合并配置文件、环境变量与命令行参数
func loadConfig(cmd *cobra.Command, g *globalFlags, f *residencesFlags) (*config.Config, error) {
	cfg, err := config.Load(g.configPath, g.envFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.General.Language = f.lang
	}
	if flags.Changed("encoding") {
		cfg.General.Encoding = f.encoding
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.noColor {
		cfg.UI.ColoredOutput = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
