// Package main 是 leartools 命令行入口
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Learting/leartools/config"
)

// 构建时通过 ldflags 注入
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errReported 错误已由终端输出过本地化提示，main 只需设置退出码
var errReported = errors.New("failed")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}

// globalFlags 所有子命令共享的参数
type globalFlags struct {
	configPath string
	envFile    string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "leartools",
		Short:         "LearTools - Minecraft 服务器世界维护工具",
		Long:          `LearTools 收录服务器世界的维护命令，例如只保留领地覆盖区域的世界裁剪。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.configPath, "config", config.DefaultPath, "配置文件路径 (.json/.yaml)")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", ".env 文件路径")

	cmd.AddCommand(residencesCmd(g))
	cmd.AddCommand(configCmd(g))
	cmd.AddCommand(versionCmd())
	return cmd
}
