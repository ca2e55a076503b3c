// ABOUTME: Tests for the admin dashboard.
// ABOUTME: Covers the access gate, the user table, and guarded deletion.
package tui

import (
	"net/http"
	"strings"
	"testing"

	"github.com/2389-research/inkwell/internal/models"
)

func loadedAdmin(t *testing.T, env *Env) *AdminModel {
	t.Helper()
	m := NewAdminModel(env)
	return settle(t, m, m.Init()).(*AdminModel)
}

func TestAdmin_RequiresAdmin(t *testing.T) {
	blog := blogWithUsers()
	m := loadedAdmin(t, newTestEnv(t, blog, loggedIn("u1", models.RoleUser)))
	if !strings.Contains(m.View(), "Admin access required") {
		t.Error("expected access message for non-admin")
	}
	if m.Init() != nil {
		t.Error("expected no fetch for non-admin")
	}
}

func TestAdmin_ListsUsers(t *testing.T) {
	m := loadedAdmin(t, newTestEnv(t, blogWithUsers(), loggedIn("root", models.RoleAdmin)))

	if rows := m.table.Rows(); len(rows) != 2 {
		t.Fatalf("expected 2 rows on page 1, got %d", len(rows))
	}
	view := m.View()
	for _, want := range []string{"ada", "root", "admin"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestAdmin_CannotDeleteAdmins(t *testing.T) {
	blog := blogWithUsers()
	var s screen = loadedAdmin(t, newTestEnv(t, blog, loggedIn("root", models.RoleAdmin)))
	m := s.(*AdminModel)

	m.table.SetCursor(1)
	s = press(t, s, "d")
	if m.confirm.active() {
		t.Error("expected no prompt for an admin account")
	}
	if !strings.Contains(s.View(), "Admin accounts cannot be deleted") {
		t.Error("expected admin protection message")
	}
}

func TestAdmin_DeleteUser(t *testing.T) {
	blog := blogWithUsers()
	var s screen = loadedAdmin(t, newTestEnv(t, blog, loggedIn("root", models.RoleAdmin)))
	m := s.(*AdminModel)

	s = press(t, s, "d")
	if !strings.Contains(s.View(), "Delete ada and all their content? [y/N]") {
		t.Fatalf("expected delete prompt, got %q", s.View())
	}
	s = press(t, s, "y")

	if blog.userCount() != 2 {
		t.Error("expected user removed on the server")
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][0] != "root" {
		t.Errorf("expected only root left on the page, got %v", rows)
	}
	if !strings.Contains(s.View(), "User deleted") {
		t.Error("expected success status")
	}
}

func TestAdmin_DeleteFailureKeepsRow(t *testing.T) {
	blog := blogWithUsers()
	blog.failWith(http.MethodDelete, "/api/users/u1", http.StatusInternalServerError)
	var s screen = loadedAdmin(t, newTestEnv(t, blog, loggedIn("root", models.RoleAdmin)))
	m := s.(*AdminModel)

	s = press(t, s, "d")
	s = press(t, s, "y")
	if len(m.table.Rows()) != 2 {
		t.Error("expected row kept after failed delete")
	}
	if !strings.Contains(s.View(), "Failed to delete user") {
		t.Error("expected failure message")
	}
}

func TestAdmin_Paging(t *testing.T) {
	var s screen = loadedAdmin(t, newTestEnv(t, blogWithUsers(), loggedIn("root", models.RoleAdmin)))
	m := s.(*AdminModel)

	press(t, s, "n")
	if m.users.Page() != 2 {
		t.Fatalf("expected page 2, got %d", m.users.Page())
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][0] != "cy" {
		t.Errorf("expected cy on page 2, got %v", rows)
	}
}
