package shell

import (
	"strings"
	"testing"

	"mazarin/internal/fs"
	"mazarin/internal/fs/memfs"
)

type fakeConsole struct {
	in  []byte
	pos int
	out strings.Builder
}

func (c *fakeConsole) WriteByte(b byte) error {
	c.out.WriteByte(b)
	return nil
}

func (c *fakeConsole) ReadByte() (byte, bool) {
	if c.pos >= len(c.in) {
		return 0, false
	}
	b := c.in[c.pos]
	c.pos++
	return b, true
}

func newFS() fs.FileSystem {
	return memfs.New(map[string][]byte{
		"/motd.txt":    []byte("hello"),
		"/bin/fib.bin": {1, 2, 3},
	})
}

func run(t *testing.T, input string) string {
	t.Helper()
	console := &fakeConsole{in: []byte(input)}
	sh := New("$ ", console, newFS())
	sh.Run()
	return console.out.String()
}

func TestEchoPrintsArguments(t *testing.T) {
	out := run(t, "echo hi there\r\nexit\r\n")
	if !strings.Contains(out, "hi there\r\n") {
		t.Errorf("output %q missing echoed text", out)
	}
}

func TestCatPrintsFileContents(t *testing.T) {
	out := run(t, "cat motd.txt\r\nexit\r\n")
	if !strings.Contains(out, "hello") {
		t.Errorf("output %q missing file contents", out)
	}
}

func TestCatMissingFileReportsError(t *testing.T) {
	out := run(t, "cat nope.txt\r\nexit\r\n")
	if !strings.Contains(out, "cat: ") {
		t.Errorf("output %q missing cat error", out)
	}
}

func TestCdIntoDirectoryThenPwd(t *testing.T) {
	out := run(t, "cd bin\r\npwd\r\nexit\r\n")
	if !strings.Contains(out, "/bin") {
		t.Errorf("output %q missing updated working directory", out)
	}
}

func TestCdDotDotReturnsToRoot(t *testing.T) {
	out := run(t, "cd bin\r\ncd ..\r\npwd\r\nexit\r\n")
	if !strings.Contains(out, "/\r\n") {
		t.Errorf("output %q missing root after cd ..", out)
	}
}

func TestCdIntoFileFails(t *testing.T) {
	out := run(t, "cd motd.txt\r\nexit\r\n")
	if !strings.Contains(out, "not a directory") {
		t.Errorf("output %q missing not-a-directory error", out)
	}
}

func TestLsListsEntries(t *testing.T) {
	out := run(t, "ls bin\r\nexit\r\n")
	if !strings.Contains(out, "fib.bin") {
		t.Errorf("output %q missing ls entry", out)
	}
}

func TestLsRendersAttributeGlyphs(t *testing.T) {
	out := run(t, "ls\r\nexit\r\n")
	if !strings.Contains(out, "----d-  bin") {
		t.Errorf("output %q missing directory glyph column for bin", out)
	}
}

func TestLsShowsHiddenFileWithGlyphsUnderDashA(t *testing.T) {
	fsys := memfs.New(map[string][]byte{
		"/.secret": []byte("shh"),
	})
	console := &fakeConsole{in: []byte("ls -a\r\nexit\r\n")}
	sh := New("$ ", console, fsys)
	sh.Run()
	out := console.out.String()
	if !strings.Contains(out, "-h--fa  .secret") {
		t.Errorf("output %q missing hidden-file glyph column for .secret", out)
	}
}

func TestUnknownCommandReportsError(t *testing.T) {
	out := run(t, "bogus\r\nexit\r\n")
	if !strings.Contains(out, "unknown command: bogus") {
		t.Errorf("output %q missing unknown-command message", out)
	}
}

func TestExitEndsRun(t *testing.T) {
	console := &fakeConsole{in: []byte("exit\r\n")}
	sh := New("$ ", console, newFS())
	done := make(chan struct{})
	go func() {
		sh.Run()
		close(done)
	}()
	<-done
}
