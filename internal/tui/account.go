package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

type accountField int

const (
	fieldName accountField = iota
	fieldEmail
	fieldPassword
	numAccountFields
)

type authResultMsg struct {
	session *domain.Session
	err     error
}

type accountModel struct {
	client    client.Backend
	session   *session.Manager
	mode      authMode
	fields    [numAccountFields]string
	focus     accountField
	submitted bool
	err       error
	statusMsg string
}

func newAccountModel(c client.Backend, s *session.Manager) accountModel {
	return accountModel{client: c, session: s, focus: fieldEmail}
}

// signedIn reports whether the session holds a token.
func (m accountModel) signedIn() bool {
	return m.session != nil && m.session.Active()
}

// visibleFields lists the fields shown for the current mode, in tab order.
func (m accountModel) visibleFields() []accountField {
	if m.mode == modeRegister {
		return []accountField{fieldName, fieldEmail, fieldPassword}
	}
	return []accountField{fieldEmail, fieldPassword}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitted = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session.Set(*msg.session)
		m.fields = [numAccountFields]string{}
		m.focus = fieldEmail
		m.statusMsg = "welcome, " + m.session.UserName()
		return m, nil

	case tea.KeyMsg:
		if m.signedIn() {
			return m.updateSignedIn(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m accountModel) updateSignedIn(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	if msg.String() == "x" {
		m.session.Clear()
		m.mode = modeLogin
		m.focus = fieldEmail
		m.err = nil
		m.statusMsg = "signed out"
	}
	return m, nil
}

func (m accountModel) updateForm(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	m.statusMsg = ""
	m.err = nil

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		if m.mode == modeLogin {
			m.mode = modeRegister
			m.focus = fieldName
		} else {
			m.mode = modeLogin
			m.focus = fieldEmail
		}
	case "tab", "down":
		m.focus = m.step(1)
	case "shift+tab", "up":
		m.focus = m.step(-1)
	case "enter":
		fields := m.visibleFields()
		if m.focus == fields[len(fields)-1] {
			return m.submit()
		}
		m.focus = m.step(1)
	default:
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m accountModel) step(dir int) accountField {
	fields := m.visibleFields()
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(fields)) % len(fields)
	return fields[idx]
}

func (m accountModel) submit() (accountModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	name := strings.TrimSpace(m.fields[fieldName])
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]

	if m.mode == modeRegister && name == "" {
		m.statusMsg = "name is required"
		return m, nil
	}
	if email == "" || password == "" {
		m.statusMsg = "email and password are required"
		return m, nil
	}

	m.submitted = true
	c, mode := m.client, m.mode
	return m, func() tea.Msg {
		var (
			sess *domain.Session
			err  error
		)
		if mode == modeRegister {
			sess, err = c.Register(context.Background(), name, email, password)
		} else {
			sess, err = c.Login(context.Background(), email, password)
		}
		return authResultMsg{session: sess, err: err}
	}
}

func (m accountModel) helpKeys() string {
	if m.signedIn() {
		return helpEntry("x", "sign out") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}
	other := "register"
	if m.mode == modeRegister {
		other = "sign in"
	}
	return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "submit") + "  " +
		helpEntry("ctrl+r", other) + "  " + helpEntry("esc", "back")
}

func (m accountModel) View() string {
	var b strings.Builder

	if m.signedIn() {
		b.WriteString(" " + sectionHeaderStyle.Render("ACCOUNT") + "\n\n")
		if u := m.session.User(); u != nil {
			fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("name "), authorStyle.Render(u.Name))
			if u.Email != "" {
				fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("email"), normalStyle.Render(u.Email))
			}
		} else {
			b.WriteString(" " + normalStyle.Render("signed in with a saved token") + "\n")
		}
		b.WriteString("\n " + dimStyle.Render("you can comment on any article") + "\n")
		if m.statusMsg != "" {
			b.WriteString("\n " + statusStyle.Render(m.statusMsg))
		}
		return b.String()
	}

	title := "SIGN IN"
	if m.mode == modeRegister {
		title = "CREATE ACCOUNT"
	}
	b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")

	labels := [numAccountFields]string{"name    ", "email   ", "password"}
	for _, f := range m.visibleFields() {
		cursor := " "
		style := metaStyle
		if f == m.focus {
			cursor = accentStyle.Render(">")
			style = selectedStyle
		}
		value := m.fields[f]
		if f == fieldPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		fmt.Fprintf(&b, " %s %s  %s\n", cursor, style.Render(labels[f]), renderInput(value, "", f == m.focus))
	}

	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.err != nil:
		b.WriteString(" " + errorStyle.Render(errorText(m.err)))
	case m.statusMsg != "":
		b.WriteString(" " + statusStyle.Render(m.statusMsg))
	default:
		b.WriteString(" " + dimStyle.Render("sign in to comment on articles"))
	}
	return b.String()
}
