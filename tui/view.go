package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📂 fileguard 文件整理") + "\n")

	b.WriteString(labelStyle.Render("监控目录：") + "\n")
	for _, dir := range m.dirs {
		b.WriteString("  " + filePathStyle.Render(dir) + "\n")
	}
	b.WriteString("\n")

	if m.closed {
		b.WriteString(successTitleStyle.Render(m.status) + "\n")
	} else {
		b.WriteString(m.spinner.View() + " " + textStyle.Render(m.status) + "\n")
	}
	b.WriteString(statsStyle.Render(fmt.Sprintf("整理次数 %d  已移动 %d  已跳过 %d", m.passes, m.moved, m.skipped)) + "\n")
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("错误: "+m.lastErr.Error()) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(tableStyle.Render(m.table.View()) + "\n")

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("s 立即整理 • ↑/↓ 浏览记录 • q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}
