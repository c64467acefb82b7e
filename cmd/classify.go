package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/fileguard/app"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <names...>",
	Short: "显示文件会被归入的分类",
	Long: `只判断分类，不移动文件。
名称可以是不存在的文件；开启 classifier.sniff_content 时会读取已存在文件的文件头。`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	entries, err := app.RunClassify(&app.ClassifyOptions{
		ConfigFile: cfgFile,
		Names:      args,
		Verbose:    verbose,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), classifyTable(entries))

	return nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
