package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo line and the session summary.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render("reel") + "  " + styles.AccentText.Render(m.viewLabel())

	var right []string
	if m.loggedIn {
		right = append(right, styles.SuccessText.Render("signed in"))
		right = append(right, styles.MutedText.Render(fmt.Sprintf("♥ %d", len(m.entries))))
	} else {
		right = append(right, styles.WarningText.Render("signed out"))
	}
	right = append(right, styles.FaintText.Render(m.theme.Name))
	rightText := strings.Join(right, "  ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(rightText)-2, 1)
	line := styles.Header.Width(max(m.width, 1)).Render(left + strings.Repeat(" ", gap) + rightText)
	return line + "\n" + styles.FaintText.Render(strings.Repeat("─", max(m.width, 1)))
}

func (m Model) viewLabel() string {
	switch m.currentView {
	case ViewSignIn:
		return "Sign in"
	case ViewSignUp:
		return "Create account"
	case ViewBrowse:
		return "Browse"
	case ViewDetail:
		return "Details"
	case ViewWishlist:
		return "Wishlist"
	default:
		return ""
	}
}

// renderFooter renders the transient status line and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	status := ""
	if m.flash != "" {
		status = styles.InfoText.Render(truncate(m.flash, max(m.width, 10)))
	}
	if m.currentView == ViewSignIn || m.currentView == ViewSignUp {
		return status + "\n"
	}
	return status + "\n" + m.help.View(m.keys)
}
