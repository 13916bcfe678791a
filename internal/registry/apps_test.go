package registry

import (
	"testing"

	"flaunch/internal/desktop"
)

func TestNewCommandApp(t *testing.T) {
	app, err := NewCommandApp("'/usr/local/bin/my editor' --new-window", false, "/tmp")
	if err != nil {
		t.Fatal(err)
	}
	ca := app.(*CommandApp)
	if len(ca.argv) != 2 || ca.argv[0] != "/usr/local/bin/my editor" || ca.argv[1] != "--new-window" {
		t.Fatalf("argv = %#v", ca.argv)
	}
	if app.ID() != "/usr/local/bin/my editor" {
		t.Errorf("ID = %q", app.ID())
	}
	if ca.workDir != "/tmp" {
		t.Errorf("workDir = %q", ca.workDir)
	}
}

func TestNewCommandAppRejectsBadLines(t *testing.T) {
	for _, line := range []string{"", "   ", "'unterminated"} {
		if _, err := NewCommandApp(line, false, ""); err == nil {
			t.Errorf("NewCommandApp(%q) should fail", line)
		}
	}
}

func TestCommandAppLaunchArgv(t *testing.T) {
	app, err := NewCommandApp("opener -n", false, "")
	if err != nil {
		t.Fatal(err)
	}
	got := app.(*CommandApp).launchArgv([]string{"file:///tmp/a%20b.txt", "smb://server/share/c.txt"})
	want := []string{"opener", "-n", "/tmp/a b.txt", "smb://server/share/c.txt"}
	if len(got) != len(want) {
		t.Fatalf("argv = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCommandAppTerminalWrap(t *testing.T) {
	SetTerminalOverride("term -e")
	defer SetTerminalOverride("")

	app, err := NewCommandApp("top", true, "")
	if err != nil {
		t.Fatal(err)
	}
	got := app.(*CommandApp).launchArgv(nil)
	want := []string{"term", "-e", "top"}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("argv = %#v, want %#v", got, want)
	}
}

func TestDesktopAppLaunchArgv(t *testing.T) {
	a := NewDesktopApp(&desktop.Entry{
		File: "/usr/share/applications/editor.desktop",
		Type: desktop.TypeApplication,
		Name: "Editor",
		Exec: "editor %F",
	})
	if a.ID() != "editor.desktop" {
		t.Errorf("ID = %q", a.ID())
	}
	got, err := a.launchArgv([]string{"file:///home/u/notes.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "editor" || got[1] != "/home/u/notes.txt" {
		t.Fatalf("argv = %#v", got)
	}
}

func TestDesktopAppTerminalWrap(t *testing.T) {
	SetTerminalOverride("term -e")
	defer SetTerminalOverride("")

	a := NewDesktopApp(&desktop.Entry{
		File:     "/usr/share/applications/htop.desktop",
		Type:     desktop.TypeApplication,
		Name:     "htop",
		Exec:     "htop",
		Terminal: true,
	})
	got, err := a.launchArgv(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != "term" || got[1] != "-e" || got[2] != "htop" {
		t.Fatalf("argv = %#v", got)
	}
}

func TestDesktopAppTryExecGate(t *testing.T) {
	a := NewDesktopApp(&desktop.Entry{
		File:    "/usr/share/applications/ghost.desktop",
		Type:    desktop.TypeApplication,
		Name:    "Ghost",
		Exec:    "ghost",
		TryExec: "/nonexistent/ghost-bin",
	})
	if err := a.Launch(nil, nil); err == nil {
		t.Fatal("missing TryExec binary should fail the launch")
	}
}

func TestSpawn(t *testing.T) {
	if err := spawn(nil, []string{"sh", "-c", "exit 0"}, ""); err != nil {
		t.Fatalf("spawn(sh) failed: %v", err)
	}
	if err := spawn(nil, []string{"/nonexistent/binary-xyz"}, ""); err == nil {
		t.Fatal("spawn of missing binary should fail")
	}
	if err := spawn(nil, nil, ""); err == nil {
		t.Fatal("spawn of empty argv should fail")
	}
}
