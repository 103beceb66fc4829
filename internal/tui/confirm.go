package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a yes/no prompt. Left/right or tab move the selection,
// enter accepts it, y and n answer directly.
type confirmModel struct {
	prompt   string
	yes      bool
	answered bool
	quit     bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.yes, m.answered = true, true
		return m, tea.Quit
	case "n", "N", "esc":
		m.yes, m.answered = false, true
		return m, tea.Quit
	case "ctrl+c", "q":
		m.quit = true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.yes = !m.yes
	case "enter":
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered || m.quit {
		return ""
	}

	yes, no := "yes", "no"
	if m.yes {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}

	content := titleStyle.Render(m.prompt) + "\n\n"
	content += yes + "    " + no + "\n\n"
	content += helpStyle.Render("y yes · n no · ←/→ select · enter confirm")
	return overlayBoxStyle.Render(content)
}
