package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/auth"
)

// signInForm is the state of the sign-in screen. Focus index len(inputs)
// is the remember checkbox.
type signInForm struct {
	inputs   [2]textinput.Model // identifier, secret
	remember bool
	focus    int
	errs     auth.FieldErrors
	message  string
	failed   bool
}

// signUpForm is the state of the registration screen. Focus index
// len(inputs) is the terms checkbox.
type signUpForm struct {
	inputs  [3]textinput.Model // identifier, secret, confirm
	terms   bool
	focus   int
	errs    auth.FieldErrors
	message string
	failed  bool
}

var (
	signInFields = [2]string{auth.FieldIdentifier, auth.FieldSecret}
	signUpFields = [3]string{auth.FieldIdentifier, auth.FieldSecret, auth.FieldConfirm}
)

func newIdentifierInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "E-mail   "
	in.Placeholder = "you@example.com"
	in.CharLimit = 254
	return in
}

func newSecretInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "TMDB API key"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.CharLimit = 512
	return in
}

func newSignInForm() signInForm {
	f := signInForm{
		inputs: [2]textinput.Model{newIdentifierInput(), newSecretInput("API key  ")},
	}
	f.inputs[0].Focus()
	return f
}

func newSignUpForm() signUpForm {
	f := signUpForm{
		inputs: [3]textinput.Model{
			newIdentifierInput(),
			newSecretInput("API key  "),
			newSecretInput("Confirm  "),
		},
	}
	f.inputs[0].Focus()
	return f
}

// prefill fills the identifier and moves focus to the secret.
func (f *signInForm) prefill(identifier string) {
	f.inputs[0].SetValue(identifier)
	f.remember = true
	f.setFocus(1)
}

func (f *signInForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.remember = false
	f.errs = nil
	f.message = ""
	f.failed = false
	f.setFocus(0)
}

func (f *signInForm) setFocus(i int) {
	f.focus = wrapIndex(i, len(f.inputs)+1)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *signUpForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.terms = false
	f.errs = nil
	f.message = ""
	f.failed = false
	f.setFocus(0)
}

func (f *signUpForm) setFocus(i int) {
	f.focus = wrapIndex(i, len(f.inputs)+1)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f signInForm) value() auth.SignInForm {
	return auth.SignInForm{
		Identifier: f.inputs[0].Value(),
		Secret:     f.inputs[1].Value(),
		Remember:   f.remember,
	}
}

func (f signUpForm) value() auth.SignUpForm {
	return auth.SignUpForm{
		Identifier:  f.inputs[0].Value(),
		Secret:      f.inputs[1].Value(),
		Confirm:     f.inputs[2].Value(),
		AcceptTerms: f.terms,
	}
}

// handleSignInKey processes keyboard input on the sign-in screen.
func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.signIn
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "ctrl+n":
		m.signUp.reset()
		m.signUp.inputs[0].SetValue(f.inputs[0].Value())
		m.currentView = ViewSignUp
		return m, nil
	case " ":
		if f.focus == len(f.inputs) {
			f.remember = !f.remember
			return m, nil
		}
	case "enter":
		return m.submitSignIn()
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitSignIn() (tea.Model, tea.Cmd) {
	f := &m.signIn
	err := m.auth.SignIn(f.value())
	f.errs = fieldErrors(err)
	f.message = auth.Message(err)
	f.failed = err != nil
	if err != nil {
		if f.errs != nil {
			f.setFocus(firstInvalid(f.errs, signInFields[:]))
		}
		return m, nil
	}

	f.inputs[1].Reset()
	m.log.Info("signed in")
	m.onSignedIn()
	m.page = 1
	cmd := m.startList(false)
	return m, cmd
}

// handleSignUpKey processes keyboard input on the registration screen.
func (m Model) handleSignUpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.signUp
	switch msg.String() {
	case "esc":
		m.currentView = ViewSignIn
		return m, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case " ":
		if f.focus == len(f.inputs) {
			f.terms = !f.terms
			return m, nil
		}
	case "enter":
		return m.submitSignUp()
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitSignUp() (tea.Model, tea.Cmd) {
	f := &m.signUp
	form := f.value()
	err := m.auth.SignUp(form)
	f.errs = fieldErrors(err)
	f.message = auth.Message(err)
	f.failed = err != nil
	if err != nil {
		if f.errs != nil {
			f.setFocus(firstInvalid(f.errs, signUpFields[:]))
		}
		return m, nil
	}

	m.signIn.reset()
	m.signIn.inputs[0].SetValue(auth.NormalizeIdentifier(form.Identifier))
	m.signIn.setFocus(1)
	m.signIn.message = "Account created. Sign in with your API key."
	m.currentView = ViewSignIn
	return m, nil
}

// firstInvalid returns the focus index of the first field with an error.
// Errors on non-text fields focus the checkbox after the inputs.
func firstInvalid(errs auth.FieldErrors, fields []string) int {
	for i, name := range fields {
		if _, bad := errs[name]; bad {
			return i
		}
	}
	return len(fields)
}

func (m Model) renderSignIn() string {
	styles := m.theme.Styles()
	f := m.signIn

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Sign in"))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
		b.WriteString(renderFieldError(styles, f.errs, signInFields[i]))
	}
	b.WriteString(renderCheckbox(styles, "Remember my e-mail", f.remember, f.focus == len(f.inputs)))
	b.WriteString("\n\n")
	b.WriteString(renderFormMessage(styles, f.message, f.failed))
	b.WriteString(styles.FaintText.Render("enter sign in · tab next field · ctrl+n create account · esc quit"))

	return m.placeForm(b.String())
}

func (m Model) renderSignUp() string {
	styles := m.theme.Styles()
	f := m.signUp

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Create account"))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
		b.WriteString(renderFieldError(styles, f.errs, signUpFields[i]))
	}
	b.WriteString(renderCheckbox(styles, "I accept the terms of use", f.terms, f.focus == len(f.inputs)))
	b.WriteString("\n")
	b.WriteString(renderFieldError(styles, f.errs, auth.FieldTerms))
	b.WriteString("\n")
	b.WriteString(renderFormMessage(styles, f.message, f.failed))
	b.WriteString(styles.FaintText.Render("enter register · tab next field · esc back"))

	return m.placeForm(b.String())
}

func (m Model) placeForm(content string) string {
	panel := m.theme.Styles().FocusedPanel.Width(formWidth).Render(content)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, panel)
}

func renderFieldError(styles Styles, errs auth.FieldErrors, field string) string {
	msg, ok := errs[field]
	if !ok {
		return "\n"
	}
	return styles.DangerText.Render("  "+msg) + "\n"
}

func renderCheckbox(styles Styles, label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	line := box + " " + label
	if focused {
		return styles.AccentText.Render("> " + line)
	}
	return styles.Text.Render("  " + line)
}

func renderFormMessage(styles Styles, message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.DangerText.Render(message) + "\n\n"
	}
	return styles.SuccessText.Render(message) + "\n\n"
}
