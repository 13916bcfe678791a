package desktop

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEntry(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	return path
}

func TestLoadApplicationEntry(t *testing.T) {
	path := writeEntry(t, "editor.desktop", `[Desktop Entry]
Type=Application
Name=Sample Editor
GenericName=Text Editor
Exec=sampled --new-window %F
TryExec=sampled
Path=/var/lib/sampled
Icon=sampled
Terminal=false
DBusActivatable=true
MimeType=text/plain;text/markdown;
Categories=Utility;TextEditor;
`)
	e, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.Type != TypeApplication {
		t.Errorf("Type = %q", e.Type)
	}
	if e.Name != "Sample Editor" {
		t.Errorf("Name = %q", e.Name)
	}
	if e.Exec != "sampled --new-window %F" {
		t.Errorf("Exec = %q", e.Exec)
	}
	if e.WorkDir != "/var/lib/sampled" {
		t.Errorf("WorkDir = %q", e.WorkDir)
	}
	if !e.DBusActivatable {
		t.Error("DBusActivatable should be true")
	}
	if e.Terminal {
		t.Error("Terminal should be false")
	}
	if len(e.MimeTypes) != 2 || e.MimeTypes[0] != "text/plain" || e.MimeTypes[1] != "text/markdown" {
		t.Errorf("MimeTypes = %v", e.MimeTypes)
	}
	if e.File != path {
		t.Errorf("File = %q, want %q", e.File, path)
	}
}

func TestLoadLinkEntry(t *testing.T) {
	path := writeEntry(t, "share.desktop", `[Desktop Entry]
Type=Link
Name=Team Share
URL=smb://server/share/docs
`)
	e, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.Type != TypeLink {
		t.Errorf("Type = %q", e.Type)
	}
	if e.URL != "smb://server/share/docs" {
		t.Errorf("URL = %q", e.URL)
	}
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"no-group.desktop", "[Other Group]\nType=Application\nExec=x\n"},
		{"no-type.desktop", "[Desktop Entry]\nName=X\n"},
		{"app-no-exec.desktop", "[Desktop Entry]\nType=Application\nName=X\n"},
		{"link-no-url.desktop", "[Desktop Entry]\nType=Link\nName=X\n"},
	}
	for _, tc := range testCases {
		path := writeEntry(t, tc.name, tc.content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.desktop")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadKeepsColonValues(t *testing.T) {
	// Exec values carry URLs; the parser must not split on ':'
	path := writeEntry(t, "url.desktop", `[Desktop Entry]
Type=Application
Name=Opener
Exec=opener http://example.com/a:b %u
`)
	e, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.Exec != "opener http://example.com/a:b %u" {
		t.Errorf("Exec = %q", e.Exec)
	}
}

func TestIDFromPath(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"/usr/share/applications/org.gnome.Evince.desktop", "org.gnome.Evince.desktop"},
		{"/usr/share/applications/kde4/okular.desktop", "kde4-okular.desktop"},
		{"/home/u/.local/share/applications/a/b/c.desktop", "a-b-c.desktop"},
		{"/opt/apps/custom.desktop", "custom.desktop"}, // outside applications dirs
	}
	for _, tc := range testCases {
		if got := IDFromPath(tc.path); got != tc.expected {
			t.Errorf("IDFromPath(%q) = %q, want %q", tc.path, got, tc.expected)
		}
	}
}
