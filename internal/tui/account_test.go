package tui

import (
	"strings"
	"testing"

	"github.com/naveenspark/folio/internal/mockapi"
)

func TestAccountLogin(t *testing.T) {
	a := press(t, started(t), "3")
	if a.view != viewAccount {
		t.Fatalf("view = %d, want account", a.view)
	}
	if a.account.focus != fieldEmail {
		t.Fatalf("focus = %d, want email", a.account.focus)
	}

	a = press(t, a, strings.Split("riley@example.com", "")...)
	a = press(t, a, "tab", "p", "w")
	if !strings.Contains(a.account.View(), "••") {
		t.Error("password not masked")
	}
	a = press(t, a, "ctrl+s")

	if !a.deps.Session.Active() {
		t.Fatal("session not active after login")
	}
	if a.deps.Session.Token() != mockapi.MockToken {
		t.Errorf("token = %q, want %q", a.deps.Session.Token(), mockapi.MockToken)
	}
	if a.deps.Session.UserName() != "riley" {
		t.Errorf("user name = %q, want riley", a.deps.Session.UserName())
	}
	if a.account.fields[fieldPassword] != "" {
		t.Error("password kept in form after login")
	}
	if !strings.Contains(a.View(), "riley") {
		t.Error("header does not show the signed-in user")
	}
}

func TestAccountRegister(t *testing.T) {
	a := press(t, started(t), "3", "ctrl+r")
	if a.account.mode != modeRegister || a.account.focus != fieldName {
		t.Fatalf("mode=%d focus=%d, want register on name", a.account.mode, a.account.focus)
	}
	a = press(t, a, "A", "n", "n", "enter", "a", "@", "b", "enter", "x")
	// enter on the last field submits.
	a = press(t, a, "enter")

	if a.deps.Session.UserName() != "Ann" {
		t.Errorf("user name = %q, want Ann", a.deps.Session.UserName())
	}
	if !strings.Contains(a.account.statusMsg, "welcome, Ann") {
		t.Errorf("statusMsg = %q", a.account.statusMsg)
	}
}

func TestAccountMissingFields(t *testing.T) {
	a := press(t, started(t), "3", "ctrl+s")
	if a.deps.Session.Active() {
		t.Fatal("signed in with empty form")
	}
	if a.account.statusMsg != "email and password are required" {
		t.Errorf("statusMsg = %q", a.account.statusMsg)
	}

	a = press(t, a, "ctrl+r", "ctrl+s")
	if a.account.statusMsg != "name is required" {
		t.Errorf("register statusMsg = %q", a.account.statusMsg)
	}
}

func TestAccountFormCapturesGlobalKeys(t *testing.T) {
	a := press(t, started(t), "3", "q", "1", "h")
	if a.view != viewAccount || a.helpOpen {
		t.Fatalf("global keys fired while typing: view=%d help=%v", a.view, a.helpOpen)
	}
	if a.account.fields[fieldEmail] != "q1h" {
		t.Errorf("email = %q, want q1h", a.account.fields[fieldEmail])
	}

	a = press(t, a, "esc")
	if a.view != viewFeed {
		t.Errorf("esc from form: view = %d, want feed", a.view)
	}
}

func TestAccountLogout(t *testing.T) {
	a := started(t)
	a = press(t, a, "3")
	a = press(t, a, strings.Split("a@b", "")...)
	a = press(t, a, "tab", "x", "ctrl+s")
	if !a.deps.Session.Active() {
		t.Fatal("precondition: login failed")
	}

	a = press(t, a, "x")
	if a.deps.Session.Active() {
		t.Error("still signed in after x")
	}
	if a.account.statusMsg != "signed out" {
		t.Errorf("statusMsg = %q", a.account.statusMsg)
	}
}

func TestAccountAuthError(t *testing.T) {
	m := newAccountModel(nil, nil)
	m.submitted = true
	m, _ = m.Update(authResultMsg{err: errBoom})
	if m.submitted {
		t.Error("submitted still set")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Errorf("view = %q, want error text", m.View())
	}
}

func TestNewLoginAppStartsOnAccount(t *testing.T) {
	a := NewLoginApp(newTestDeps())
	if a.view != viewAccount {
		t.Errorf("view = %d, want account", a.view)
	}
}
