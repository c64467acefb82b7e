package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moyu-x/fileguard/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directories...]",
	Short: "监控目录并自动整理新文件",
	Long: `监控目录第一层新出现的文件，等文件写完后整理所在目录。
未给出目录时使用配置中的 watch.dirs（默认 ~/Desktop 和 ~/Downloads）。
标准输出是终端时显示交互界面，按 s 立即整理，按 q 退出。`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	initialSort, _ := cmd.Flags().GetBool("initial-sort")

	useTUI := isTerminal(cmd.OutOrStdout())
	if cmd.Flags().Changed("tui") {
		useTUI, _ = cmd.Flags().GetBool("tui")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunWatch(ctx, &app.WatchOptions{
		ConfigFile:  cfgFile,
		Dirs:        args,
		InitialSort: initialSort,
		TUI:         useTUI,
		Verbose:     verbose,
	})
}

func init() {
	watchCmd.Flags().Bool("initial-sort", false, "开始监控前先整理一次")
	watchCmd.Flags().Bool("tui", true, "显示交互界面（默认在终端中启用）")

	rootCmd.AddCommand(watchCmd)
}
