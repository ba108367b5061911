package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/studyscout/internal/controller"
	"github.com/csheth/studyscout/internal/session"
	"github.com/csheth/studyscout/internal/view"
)

func (m *model) View() string {
	page := m.ctrl.Page()
	parts := []string{
		m.heroView(),
		m.tabBarView(page.Controls),
		paneBoxStyle.Width(m.layout.viewportWidth + 2).Render(m.paneView(page)),
		m.toastsView(),
		m.sessionMeterView(page),
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroTitleStyle.Render(heroTitle),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) tabBarView(controls view.Controls) string {
	current := m.focus.pane()
	tabs := make([]string, 0, len(paneSequence))
	for _, p := range paneSequence {
		label := paneTitle(p)
		if paneBusy(p, controls) {
			label = fmt.Sprintf("%s %s", label, m.spinner.View())
		}
		if p == current {
			tabs = append(tabs, activeTabStyle.Render(label))
			continue
		}
		tabs = append(tabs, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func paneBusy(p pane, controls view.Controls) bool {
	switch p {
	case paneUpload:
		return controls.UploadBusy
	case paneSummary:
		return controls.SummaryBusy
	case paneFlashcards:
		return controls.FlashcardsBusy
	case paneChat:
		return controls.QuestionBusy
	default:
		return controls.CredentialBusy
	}
}

func (m *model) paneView(page view.Page) string {
	switch m.focus.pane() {
	case paneUpload:
		return m.uploadPaneView(page)
	case paneSummary:
		return m.summaryPaneView(page)
	case paneFlashcards:
		return m.flashcardPaneView(page)
	case paneChat:
		return m.chatPaneView(page)
	default:
		return m.settingsPaneView(page)
	}
}

func (m *model) uploadPaneView(page view.Page) string {
	cb := &contentBuilder{}
	cb.WriteString(sectionHeaderStyle.Render("Upload a PDF"))
	cb.WriteRune('\n')
	if page.UploadMode == session.UploadDirect {
		cb.WriteString(helperStyle.Render("Alternative upload method: the file is sent as a plain form submission."))
		cb.WriteRune('\n')
	}
	cb.WriteString(m.documentInput.View())
	cb.WriteRune('\n')
	cb.WriteString(helperStyle.Render("Enter or Ctrl+U uploads the file."))
	cb.WriteRune('\n')
	cb.WriteRune('\n')
	cb.WriteString(sectionHeaderStyle.Render("Or paste text"))
	cb.WriteRune('\n')
	cb.WriteString(m.textInput.View())
	cb.WriteRune('\n')
	cb.WriteString(helperStyle.Render("Ctrl+S uploads the pasted text."))
	cb.WriteRune('\n')
	if page.Controls.UploadBusy {
		cb.WriteString(helperStyle.Render(fmt.Sprintf("%s Uploading…", m.spinner.View())))
		cb.WriteRune('\n')
	}
	if page.ShowExtracted {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render("Extracted Text"))
		cb.WriteRune('\n')
		cb.WriteString(wrapPlain(previewText(page.ExtractedText, extractedPreviewLimit), m.wrapWidth(4)))
		cb.WriteRune('\n')
	}
	if m.nativePage != nil && m.nativePage.Note == nil {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render(fmt.Sprintf("Server Response (status %d)", m.nativePage.Status)))
		cb.WriteRune('\n')
		cb.WriteString(helperStyle.Render(wrapPlain(previewText(m.nativePage.Body, nativeBodyPreviewLimit), m.wrapWidth(4))))
		cb.WriteRune('\n')
	}
	return cb.String()
}

func (m *model) summaryPaneView(page view.Page) string {
	parts := []string{sectionHeaderStyle.Render("Summary")}
	switch {
	case !page.Controls.SummaryEnabled:
		parts = append(parts, disabledStyle.Render("Upload content to enable summaries."))
	case page.Controls.SummaryBusy:
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Generating summary…", m.spinner.View())))
	case len(page.Summary) > 0:
		parts = append(parts, m.summaryView.View())
	default:
		parts = append(parts, helperStyle.Render("Press s or Enter to generate a summary."))
	}
	return joinNonEmpty(parts)
}

func (m *model) flashcardPaneView(page view.Page) string {
	parts := []string{sectionHeaderStyle.Render("Flashcards")}
	switch {
	case !page.Controls.FlashcardsEnabled:
		parts = append(parts, disabledStyle.Render("Upload content to enable flashcards."))
		return joinNonEmpty(parts)
	case page.Controls.FlashcardsBusy:
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Generating flashcards…", m.spinner.View())))
		return joinNonEmpty(parts)
	case !page.HasCard:
		parts = append(parts, helperStyle.Render("Press f or Enter to generate flashcards."))
		return joinNonEmpty(parts)
	}
	card := page.Card
	wrap := m.wrapWidth(4)
	parts = append(parts, helperStyle.Render(card.Pagination))
	parts = append(parts, cardQuestionStyle.Render(wrapPlain(card.Question, wrap)))
	if card.AnswerVisible {
		parts = append(parts, cardAnswerStyle.Render(wrapPlain(card.Answer, wrap)))
	}
	parts = append(parts, lipgloss.JoinHorizontal(
		lipgloss.Top,
		button("← Previous", card.PrevEnabled),
		" ",
		button(card.ToggleLabel, true),
		" ",
		button("Next →", card.NextEnabled),
	))
	return joinNonEmpty(parts)
}

func (m *model) chatPaneView(page view.Page) string {
	parts := []string{sectionHeaderStyle.Render("Ask a Question")}
	if len(m.ctrl.Chat()) == 0 {
		parts = append(parts, helperStyle.Render("Questions and answers will appear here."))
	} else {
		parts = append(parts, m.chatView.View())
	}
	if page.Controls.QuestionBusy {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Thinking…", m.spinner.View())))
	}
	inputBlock := m.questionInput.View()
	if !page.Controls.AskEnabled {
		inputBlock = joinLines(inputBlock, disabledStyle.Render("Upload content to enable questions."))
	}
	check := " "
	if m.useContext {
		check = "x"
	}
	inputBlock = joinLines(inputBlock, helperStyle.Render(fmt.Sprintf("[%s] Use my notes as context (Ctrl+T)", check)))
	parts = append(parts, inputBlock)
	return joinNonEmpty(parts)
}

func (m *model) settingsPaneView(page view.Page) string {
	parts := []string{
		sectionHeaderStyle.Render("API Key"),
		joinLines(
			m.apiKeyInput.View(),
			helperStyle.Render("Enter updates the key. The session restarts after a successful update."),
		),
	}
	if page.Controls.CredentialBusy {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Updating API key…", m.spinner.View())))
	}
	if m.config.BaseURL != "" {
		parts = append(parts, helperStyle.Render("Backend: "+m.config.BaseURL))
	}
	return joinNonEmpty(parts)
}

func button(label string, enabled bool) string {
	if !enabled {
		return disabledStyle.Render("[" + label + "]")
	}
	return buttonStyle.Render(label)
}

func (m *model) toastsView() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		switch t.Level {
		case controller.LevelError:
			lines = append(lines, toastErrorStyle.Render(t.Message))
		case controller.LevelSuccess:
			lines = append(lines, toastSuccessStyle.Render(successStyle.Render(t.Message)))
		default:
			lines = append(lines, toastInfoStyle.Render(t.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) sessionMeterView(page view.Page) string {
	store := m.ctrl.Store()
	sessionID := store.ID()
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	note := "No content"
	if page.ShowExtracted {
		note = "Content ready"
	}
	stats := []string{
		fmt.Sprintf("Session %s", sessionID),
		fmt.Sprintf("Upload %s", page.UploadMode),
		note,
		fmt.Sprintf("Cards %d", store.Deck().Len()),
		fmt.Sprintf("Q&A %d", store.TranscriptLen()),
	}
	if running := len(m.jobs); running > 0 {
		stats = append(stats, fmt.Sprintf("%d job(s) running", running))
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) keyLegendView() string {
	bindings := m.keys.legend()
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(bindings); i += columns {
		end := i + columns
		if end > len(bindings) {
			end = len(bindings)
		}
		var cells []string
		for _, binding := range bindings[i:end] {
			help := binding.Help()
			k := keyStyle.Render(help.Key)
			desc := keyDescStyle.Render(" " + help.Desc + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, k, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, helperStyle.Render("Letter shortcuts apply in the Summary and Flashcards panes."))
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func joinLines(parts ...string) string {
	return strings.Join(parts, "\n")
}
