package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moyu-x/fileguard/app"
	"github.com/moyu-x/fileguard/pkg/reconciler"
)

var sortCmd = &cobra.Command{
	Use:   "sort <directory>",
	Short: "立即整理一个目录",
	Long: `把目录第一层的文件按类型移动到分类子目录中，不进入子目录。
只为本次确实有文件的分类创建目录；分类目录中已有同名文件时按 --on-conflict 处理。`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	onConflict, _ := cmd.Flags().GetString("on-conflict")
	list, _ := cmd.Flags().GetBool("list")

	result, err := app.RunSort(&app.SortOptions{
		ConfigFile: cfgFile,
		Dir:        args[0],
		OnConflict: onConflict,
		Verbose:    verbose,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResult(out, result)

	if list {
		placements, err := app.RunInventory(&app.InventoryOptions{
			ConfigFile: cfgFile,
			Dir:        args[0],
			Verbose:    verbose,
		})
		if err != nil {
			return err
		}
		printInventory(out, placements)
	}

	return nil
}

func printResult(w io.Writer, result *reconciler.Result) {
	for _, t := range []string{categoryTable(result), skipTable(result.Skipped)} {
		if t != "" {
			fmt.Fprintln(w, t)
		}
	}

	fmt.Fprintf(w, "已将文件整理到 %d 个分类，移动 %d 个，跳过 %d 个\n",
		result.CategoriesTouched, result.Moved(), len(result.Skipped))
}

func printInventory(w io.Writer, placements []reconciler.Placement) {
	if len(placements) == 0 {
		fmt.Fprintln(w, "分类目录中没有文件")
		return
	}
	fmt.Fprintln(w, inventoryTable(placements))
}

func init() {
	sortCmd.Flags().String("on-conflict", "", "同名文件处理方式: skip、rename 或 overwrite（默认使用配置）")
	sortCmd.Flags().Bool("list", false, "整理后列出各分类目录中的文件")

	rootCmd.AddCommand(sortCmd)
}
