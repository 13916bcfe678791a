package launcher

import (
	"strings"
	"testing"

	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
)

func desktopInfo(path string, attr fileinfo.Attr) *fileinfo.FileInfo {
	attr.DesktopEntry = true
	if attr.MimeType == "" {
		attr.MimeType = fileinfo.MimeDesktopEntry
	}
	return fileinfo.New(fspath.FromString(path), attr)
}

func TestDesktopEntryExecByTarget(t *testing.T) {
	reg := newFakeRegistry()
	app := &fakeApp{id: "editor.desktop"}
	reg.ids["editor.desktop"] = app
	l := newTestLauncher(reg, &fakeQuery{})

	info := desktopInfo("/home/u/Desktop/edit.desktop", fileinfo.Attr{
		Name: "edit.desktop", ExecutableType: true, Target: "editor.desktop",
	})
	if !l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("LaunchDesktopEntry = false")
	}
	if len(reg.idQueries) != 1 || reg.idQueries[0] != "editor.desktop" {
		t.Errorf("idQueries = %#v, want the target id only", reg.idQueries)
	}
	if len(app.calls) != 1 || len(app.calls[0]) != 0 {
		t.Fatalf("launch calls = %#v, want one launch with no uris", app.calls)
	}
}

func TestDesktopEntryExecByPath(t *testing.T) {
	reg := newFakeRegistry()
	app := &fakeApp{id: "tool.desktop"}
	reg.ids["/opt/tool/tool.desktop"] = app
	l := newTestLauncher(reg, &fakeQuery{})

	info := desktopInfo("/opt/tool/tool.desktop", fileinfo.Attr{Name: "tool.desktop", ExecutableType: true})
	if !l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("LaunchDesktopEntry = false")
	}
	if len(app.calls) != 1 {
		t.Fatalf("launch calls = %#v", app.calls)
	}
}

func TestDesktopEntryExecShortcutRoutesTarget(t *testing.T) {
	reg := newFakeRegistry()
	q := &fakeQuery{}
	l := newTestLauncher(reg, q)

	info := desktopInfo("/home/u/Desktop/doc.desktop", fileinfo.Attr{
		Name: "doc.desktop", ExecutableType: true, Shortcut: true, Target: "file:///tmp/doc.txt",
	})
	if l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("shortcut entry reported a direct launch")
	}
	if len(q.requests) != 1 || len(q.requests[0]) != 1 {
		t.Fatalf("requests = %#v", q.requests)
	}
	if got := q.requests[0][0].String(); got != "file:///tmp/doc.txt" {
		t.Errorf("queued %q, want the shortcut target", got)
	}
	if len(reg.idQueries) != 0 {
		t.Errorf("idQueries = %#v, want none", reg.idQueries)
	}
}

func TestDesktopEntryOpenWithDefaultApp(t *testing.T) {
	reg := newFakeRegistry()
	viewer := &fakeApp{id: "viewer.desktop"}
	reg.defaults[fileinfo.MimeDesktopEntry] = viewer
	l := newTestLauncher(reg, &fakeQuery{})
	l.AskExecFile = func(*fileinfo.FileInfo) ExecAction { return OpenWithDefaultApp }

	info := desktopInfo("/home/u/Desktop/edit.desktop", fileinfo.Attr{
		Name: "edit.desktop", ExecutableType: true, Target: "editor.desktop",
	})
	if !l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("LaunchDesktopEntry = false")
	}
	if len(viewer.calls) != 1 || viewer.calls[0][0] != "file:///home/u/Desktop/edit.desktop" {
		t.Fatalf("viewer calls = %#v", viewer.calls)
	}
}

func TestDesktopEntryCancel(t *testing.T) {
	reg := newFakeRegistry()
	q := &fakeQuery{}
	l := newTestLauncher(reg, q)
	l.AskExecFile = func(*fileinfo.FileInfo) ExecAction { return CancelExec }

	info := desktopInfo("/home/u/Desktop/edit.desktop", fileinfo.Attr{
		Name: "edit.desktop", ExecutableType: true, Target: "editor.desktop",
	})
	if l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("LaunchDesktopEntry = true after cancel")
	}
	if len(reg.idQueries) != 0 || len(q.requests) != 0 {
		t.Errorf("side effects after cancel: ids %#v, requests %#v", reg.idQueries, q.requests)
	}
}

func TestDesktopEntryNativeNonExecutable(t *testing.T) {
	reg := newFakeRegistry()
	app := &fakeApp{id: "ed.desktop"}
	reg.ids["/usr/share/applications/ed.desktop"] = app
	l := newTestLauncher(reg, &fakeQuery{})
	l.AskExecFile = func(*fileinfo.FileInfo) ExecAction {
		t.Error("prompt consulted for a non-executable entry")
		return CancelExec
	}

	info := desktopInfo("/usr/share/applications/ed.desktop", fileinfo.Attr{Name: "ed.desktop"})
	extra := fspath.List{fspath.FromLocal("/tmp/a.txt")}
	if !l.LaunchDesktopEntry(info, extra, nil) {
		t.Fatal("LaunchDesktopEntry = false")
	}
	if len(app.calls) != 1 || len(app.calls[0]) != 1 || app.calls[0][0] != "file:///tmp/a.txt" {
		t.Fatalf("launch calls = %#v, want the extra path carried through", app.calls)
	}
}

func TestDesktopEntryMenuScheme(t *testing.T) {
	reg := newFakeRegistry()
	app := &fakeApp{id: "ed.desktop"}
	reg.ids["ed.desktop"] = app
	l := newTestLauncher(reg, &fakeQuery{})

	info := desktopInfo("menu://applications/ed.desktop", fileinfo.Attr{Name: "ed.desktop", Target: "ed.desktop"})
	if !l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("LaunchDesktopEntry = false")
	}
	if len(app.calls) != 1 {
		t.Fatalf("launch calls = %#v", app.calls)
	}
}

func TestDesktopEntryRemoteNonNativeDropped(t *testing.T) {
	reg := newFakeRegistry()
	l := newTestLauncher(reg, &fakeQuery{})
	sink := &errSink{}
	l.ShowError = sink.hook

	info := desktopInfo("sftp://host/apps/x.desktop", fileinfo.Attr{Name: "x.desktop"})
	if l.LaunchDesktopEntry(info, nil, nil) {
		t.Fatal("remote entry launched")
	}
	if len(reg.idQueries) != 0 || len(sink.errs) != 0 {
		t.Errorf("side effects: ids %#v, errors %#v", reg.idQueries, sink.errs)
	}
}

func TestLaunchDesktopEntryIDInvalid(t *testing.T) {
	reg := newFakeRegistry()
	l := newTestLauncher(reg, &fakeQuery{})
	sink := &errSink{}
	l.ShowError = sink.hook

	if l.LaunchDesktopEntryID("ghost.desktop", nil, nil) {
		t.Fatal("LaunchDesktopEntryID = true for unknown id")
	}
	if len(sink.errs) != 1 || errors.CodeOf(sink.errs[0]) != errors.CodeInvalidDesktopEntry {
		t.Fatalf("errors = %#v", sink.errs)
	}
	if !strings.Contains(sink.errs[0].Error(), "ghost.desktop") {
		t.Errorf("error %q does not name the id", sink.errs[0])
	}
}

func TestClassificationDesktopEntryBeforeExecutable(t *testing.T) {
	reg := newFakeRegistry()
	app := &fakeApp{id: "editor.desktop"}
	reg.ids["editor.desktop"] = app
	l := newTestLauncher(reg, &fakeQuery{})
	seam := &cmdSeam{app: &fakeApp{}}
	l.NewCommandApp = seam.fn

	// executable-type desktop entries stay on the desktop-entry path
	info := desktopInfo("/home/u/Desktop/edit.desktop", fileinfo.Attr{
		Name: "edit.desktop", ExecutableType: true, Target: "editor.desktop",
	})
	l.LaunchFiles([]*fileinfo.FileInfo{info}, nil)

	if seam.calls != 0 {
		t.Errorf("command descriptor built for a desktop entry")
	}
	if len(app.calls) != 1 {
		t.Fatalf("launch calls = %#v", app.calls)
	}
}
