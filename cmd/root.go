package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fileguard [directory]",
	Short: "按文件类型自动整理目录",
	Long: `fileguard 把目录中的文件按扩展名移动到分类子目录中。

主要功能:
- 按扩展名归入 Documents、Pictures、Compressed、Videos、Music，其余归入 Others
- 扩展名无法识别时参考文件类型提示
- 监控桌面和下载目录，新文件写完后自动整理
- 跳过尚未下载完成的临时文件

直接给出目录时对该目录执行一次整理，等同于 fileguard sort <directory>。`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runSort(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认 $HOME/.fileguard/config.yaml）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")

	rootCmd.Flags().String("on-conflict", "", "同名文件处理方式: skip、rename 或 overwrite")
	rootCmd.Flags().Bool("list", false, "整理后列出各分类目录中的文件")
}
