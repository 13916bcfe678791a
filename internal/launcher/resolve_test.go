package launcher

import (
	"testing"

	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
)

func shortcutInfo(path, target string) *fileinfo.FileInfo {
	return fileinfo.New(fspath.FromString(path), fileinfo.Attr{
		Name: "link.desktop", Shortcut: true, Target: target,
	})
}

func TestResolveShortcutLocalTarget(t *testing.T) {
	l := newTestLauncher(newFakeRegistry(), &fakeQuery{})

	p := l.ResolveShortcut(shortcutInfo("/home/u/link.desktop", "/srv/docs/readme.txt"), nil)
	if !p.IsValid() || p.LocalPath() != "/srv/docs/readme.txt" {
		t.Fatalf("resolved %#v", p)
	}
}

func TestResolveShortcutFileScheme(t *testing.T) {
	reg := newFakeRegistry()
	l := newTestLauncher(reg, &fakeQuery{})

	p := l.ResolveShortcut(shortcutInfo("/home/u/link.desktop", "file:///tmp/doc.txt"), nil)
	if !p.IsValid() || p.LocalPath() != "/tmp/doc.txt" {
		t.Fatalf("resolved %#v", p)
	}
	if len(reg.schemeQueries) != 0 {
		t.Errorf("scheme handler consulted for file: %#v", reg.schemeQueries)
	}
}

func TestResolveShortcutVirtualSchemes(t *testing.T) {
	reg := newFakeRegistry()
	l := newTestLauncher(reg, &fakeQuery{})

	for _, target := range []string{"trash:///", "network:///", "computer:///"} {
		p := l.ResolveShortcut(shortcutInfo("/home/u/link.desktop", target), nil)
		if !p.IsValid() {
			t.Errorf("target %q did not resolve", target)
		}
	}
	if len(reg.schemeQueries) != 0 {
		t.Errorf("scheme handler consulted: %#v", reg.schemeQueries)
	}
}

func TestResolveShortcutSchemeHandler(t *testing.T) {
	reg := newFakeRegistry()
	browser := &fakeApp{id: "browser.desktop"}
	reg.schemes["http"] = browser
	l := newTestLauncher(reg, &fakeQuery{})

	p := l.ResolveShortcut(shortcutInfo("/home/u/link.desktop", "http://example.com/"), nil)
	if p.IsValid() {
		t.Errorf("scheme-handled target still resolved to %#v", p)
	}
	if len(browser.calls) != 1 || len(browser.calls[0]) != 1 || browser.calls[0][0] != "http://example.com/" {
		t.Fatalf("browser calls = %#v", browser.calls)
	}
}

func TestResolveShortcutUnknownSchemeDropped(t *testing.T) {
	reg := newFakeRegistry()
	l := newTestLauncher(reg, &fakeQuery{})
	sink := &errSink{}
	l.ShowError = sink.hook

	p := l.ResolveShortcut(shortcutInfo("/home/u/link.desktop", "gopher://example.com/"), nil)
	if p.IsValid() {
		t.Errorf("unhandled target resolved to %#v", p)
	}
	if len(sink.errs) != 0 {
		t.Errorf("drop reported errors: %#v", sink.errs)
	}
	if len(reg.schemeQueries) != 1 || reg.schemeQueries[0] != "gopher" {
		t.Errorf("schemeQueries = %#v", reg.schemeQueries)
	}
}

func TestShortcutClassificationQueuesTarget(t *testing.T) {
	reg := newFakeRegistry()
	q := &fakeQuery{}
	l := newTestLauncher(reg, q)

	l.LaunchFiles([]*fileinfo.FileInfo{shortcutInfo("/home/u/link.desktop", "file:///tmp/doc.txt")}, nil)

	if len(q.requests) != 1 || len(q.requests[0]) != 1 {
		t.Fatalf("requests = %#v", q.requests)
	}
	if got := q.requests[0][0].String(); got != "file:///tmp/doc.txt" {
		t.Errorf("queued %q", got)
	}
}

func TestLaunchPathsNonBlocking(t *testing.T) {
	reg := newFakeRegistry()
	editor := &fakeApp{id: "editor.desktop"}
	reg.defaults["text/plain"] = editor
	q := &fakeQuery{}
	l := newTestLauncher(reg, q)

	job := l.LaunchPaths(fspath.List{fspath.FromLocal("/tmp/a.txt")}, nil)
	if job == nil {
		t.Fatal("LaunchPaths = nil")
	}
	if len(q.requests) != 1 {
		t.Fatalf("requests = %#v", q.requests)
	}
	if len(editor.calls) != 0 {
		t.Fatal("dispatch ran before the query completed")
	}

	q.jobs[0].fire([]*fileinfo.FileInfo{plainInfo("/tmp/a.txt", "text/plain")})
	l.Wait()

	if len(editor.calls) != 1 || editor.calls[0][0] != "file:///tmp/a.txt" {
		t.Fatalf("launch calls = %#v", editor.calls)
	}
}

func TestWaitBlocksForAsyncCompletion(t *testing.T) {
	reg := newFakeRegistry()
	editor := &fakeApp{id: "editor.desktop"}
	reg.defaults["text/plain"] = editor
	q := &fakeQuery{}
	l := newTestLauncher(reg, q)

	l.LaunchPaths(fspath.List{fspath.FromLocal("/tmp/a.txt")}, nil)
	go q.jobs[0].fire([]*fileinfo.FileInfo{plainInfo("/tmp/a.txt", "text/plain")})
	l.Wait()

	if len(editor.calls) != 1 {
		t.Fatalf("launch calls = %#v", editor.calls)
	}
}

func TestResolveDepthBounded(t *testing.T) {
	reg := newFakeRegistry()
	q := &fakeQuery{}
	// every round resolves to another unmounted share, forever
	q.resolve = func(paths fspath.List) []*fileinfo.FileInfo {
		return []*fileinfo.FileInfo{
			fileinfo.New(paths[0], fileinfo.Attr{Name: "share", Mountable: true}),
		}
	}
	l := newTestLauncher(reg, q)
	l.MaxResolveDepth = 3
	sink := &errSink{cont: true}
	l.ShowError = sink.hook

	seed := fileinfo.New(fspath.FromURI("smb://server/share"), fileinfo.Attr{Name: "share", Mountable: true})
	l.LaunchFiles([]*fileinfo.FileInfo{seed}, nil)
	l.Wait()

	if len(q.requests) != 3 {
		t.Fatalf("query rounds = %d, want exactly MaxResolveDepth", len(q.requests))
	}
	if len(sink.errs) == 0 {
		t.Fatal("no errors reported")
	}
	last := sink.errs[len(sink.errs)-1]
	if errors.CodeOf(last) != errors.CodeResolveLoop {
		t.Fatalf("last error = %#v, want a resolution-bound failure", last)
	}
	mounted := 0
	for _, err := range sink.errs {
		if errors.CodeOf(err) == errors.CodeNotMounted {
			mounted++
		}
	}
	if mounted != 4 {
		t.Errorf("not-mounted reports = %d, want one per round plus the seed", mounted)
	}
}
