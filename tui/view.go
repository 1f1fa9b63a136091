package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.dialog.IsOpen() {
		return frameStyle.Width(m.width - 2).Render(m.dialogView())
	}
	return frameStyle.Width(m.width - 2).Render(m.editorView())
}

func (m *Model) editorView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AI Text Improver"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Tone: "))
	b.WriteString(activeStyle.Render(m.tone.Label()))
	b.WriteString("    ")
	check := "[ ]"
	if m.improve {
		check = "[x]"
	}
	b.WriteString(labelStyle.Render(check + " Improve readability?"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		action("Clear", m.keys.Clear.Enabled(), false),
		"  ",
		action("Copy", m.keys.Copy.Enabled(), false),
		"  ",
		action(m.buf.CompareLabel(), m.keys.Compare.Enabled(), m.buf.ReadOnly()),
	))
	b.WriteString("\n")
	b.WriteString(m.area.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.infoMsg != "" {
		b.WriteString(infoStyle.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.generateButton())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) generateButton() string {
	if m.generating {
		return buttonDisabledStyle.Render(fmt.Sprintf("%s Generating", m.spinner.View()))
	}
	if !m.keys.Generate.Enabled() {
		return buttonDisabledStyle.Render("Generate")
	}
	return buttonStyle.Render("Generate")
}

func (m *Model) dialogView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("OpenAI API Key"))
	b.WriteString("\n")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Your API key is stored locally and only sent to the completion API."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		binding(m.dkeys.Cancel, "Cancel"),
		"  ",
		binding(m.dkeys.Save, "Save"),
		"  ",
		subtitleStyle.Render("tab "+m.dialog.VisibilityLabel()),
	))
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func action(label string, enabled, active bool) string {
	text := "[" + label + "]"
	switch {
	case !enabled:
		return disabledStyle.Render(text)
	case active:
		return activeStyle.Render(text)
	default:
		return actionStyle.Render(text)
	}
}

func binding(b key.Binding, label string) string {
	text := b.Help().Key + " " + label
	if !b.Enabled() {
		return disabledStyle.Render(text)
	}
	return actionStyle.Render(text)
}
