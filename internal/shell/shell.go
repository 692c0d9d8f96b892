// Package shell is the kernel's built-in command table, reachable from the
// BRK trap handler: cat, cd, echo, exit, ls [-a], pwd, sleep, operating
// against an internal/fs.FileSystem. The interactive line editor and
// command parser around this table (backspace handling, bell-on-control-
// character, the StackVec tokenizer) stay unimplemented — only the fixed
// dispatch table they feed is in scope. Grounded on kern/src/shell.rs.
package shell

import (
	"strconv"
	"strings"

	"mazarin/internal/fs"
)

const (
	lf = 10
	cr = 13
)

// Console is the byte-oriented device the shell writes command output to,
// and reads raw command lines from. Satisfied by internal/console.Console.
type Console interface {
	WriteByte(b byte) error
	ReadByte() (b byte, ok bool)
}

// Shell is one REPL instance: its prompt, console, filesystem, and current
// working directory.
type Shell struct {
	Prefix  string
	Console Console
	FS      fs.FileSystem
	workDir string
}

// New constructs a Shell rooted at "/".
func New(prefix string, console Console, fsys fs.FileSystem) *Shell {
	return &Shell{Prefix: prefix, Console: console, FS: fsys, workDir: "/"}
}

// Run executes commands read from the console until the user types "exit".
// It never returns early for a malformed or unknown command — those just
// print an error and the prompt comes back.
func (s *Shell) Run() {
	for {
		s.print(s.Prefix)
		line := s.readLine()
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if s.dispatch(args) {
			return
		}
	}
}

// readLine accumulates raw bytes up to the next CR or LF. There is no
// editing: a malformed line is just a malformed command.
func (s *Shell) readLine() string {
	var line []byte
	for {
		b := s.blockingReadByte()
		if b == cr || b == lf {
			s.print("\r\n")
			return string(line)
		}
		line = append(line, b)
		s.Console.WriteByte(b)
	}
}

func (s *Shell) blockingReadByte() byte {
	for {
		if b, ok := s.Console.ReadByte(); ok {
			return b
		}
	}
}

func (s *Shell) print(msg string) {
	for i := 0; i < len(msg); i++ {
		s.Console.WriteByte(msg[i])
	}
}

func (s *Shell) println(msg string) {
	s.print(msg)
	s.print("\r\n")
}

// dispatch runs one parsed command line. It reports whether the shell
// should exit.
func (s *Shell) dispatch(args []string) bool {
	switch args[0] {
	case "cat":
		s.cmdCat(args[1:])
	case "cd":
		s.cmdCd(args[1:])
	case "echo":
		s.cmdEcho(args[1:])
	case "exit":
		return true
	case "ls":
		s.cmdLs(args[1:])
	case "pwd":
		s.println(s.workDir)
	case "sleep":
		s.cmdSleep(args[1:])
	default:
		s.println("unknown command: " + args[0])
	}
	return false
}

func (s *Shell) resolve(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	if s.workDir == "/" {
		return "/" + p
	}
	return s.workDir + "/" + p
}

func (s *Shell) cmdCat(files []string) {
	for _, name := range files {
		path := s.resolve(name)
		f, err := fs.OpenFile(s.FS, path)
		if err != nil {
			s.println("cat: " + path + ": " + err.Error())
			continue
		}
		buf := make([]byte, 512)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				for i := 0; i < n; i++ {
					s.Console.WriteByte(buf[i])
				}
			}
			if err != nil {
				break
			}
		}
	}
}

func (s *Shell) cmdCd(args []string) {
	switch len(args) {
	case 0:
		s.println("cd: <directory> argument required")
	case 1:
		switch args[0] {
		case ".":
		case "..":
			if i := strings.LastIndexByte(s.workDir, '/'); i > 0 {
				s.workDir = s.workDir[:i]
			} else {
				s.workDir = "/"
			}
		default:
			path := s.resolve(args[0])
			e, err := s.FS.Open(path)
			if err != nil {
				s.println("cd: error: " + err.Error())
				return
			}
			if _, ok := e.AsDir(); !ok {
				s.println("cd: " + args[0] + ": not a directory")
				return
			}
			s.workDir = path
		}
	default:
		s.println("cd: too many arguments")
	}
}

func (s *Shell) cmdEcho(args []string) {
	s.println(strings.Join(args, " "))
}

func (s *Shell) cmdLs(args []string) {
	showHidden := false
	path := s.workDir
	switch len(args) {
	case 0:
	case 1:
		if args[0] == "-a" {
			showHidden = true
		} else {
			path = s.resolve(args[0])
		}
	case 2:
		if args[0] != "-a" {
			s.println("ls: invalid argument " + args[0])
			return
		}
		showHidden = true
		path = s.resolve(args[1])
	default:
		s.println("ls: too many arguments")
		return
	}
	s.ls(path, showHidden)
}

func (s *Shell) ls(path string, showHidden bool) {
	e, err := s.FS.Open(path)
	if err != nil {
		s.println("ls: error: " + err.Error())
		return
	}
	d, ok := e.AsDir()
	if !ok {
		s.println("ls: " + path + ": not a directory")
		return
	}
	entries, err := d.Entries()
	if err != nil {
		s.println("ls: error iterating directory: " + err.Error())
		return
	}
	for _, entry := range entries {
		if !showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		s.println(glyphs(entry.Attrs()) + "  " + entry.Name())
	}
}

// glyphs renders a's six FAT32 attribute bits as the fixed-width "rhsvfa"
// column printed ahead of every entry ls lists, with or without -a: read-only,
// hidden, system, volume-id, dir-or-file, archive, each a flag letter or
// "-" when unset.
func glyphs(a fs.Attrs) string {
	b := [6]byte{'-', '-', '-', '-', 'f', '-'}
	if a.ReadOnly {
		b[0] = 'r'
	}
	if a.Hidden {
		b[1] = 'h'
	}
	if a.System {
		b[2] = 's'
	}
	if a.VolumeID {
		b[3] = 'v'
	}
	if a.Dir {
		b[4] = 'd'
	}
	if a.Archive {
		b[5] = 'a'
	}
	return string(b[:])
}

// Sleeper blocks for ms milliseconds, returning the elapsed time in
// milliseconds. cmd/kernel sets Sleep to a busy-wait on the system timer,
// since the kernel-mode shell (entered via BRK) has no scheduler to yield
// to.
type Sleeper func(ms uint32) (elapsedMs uint64, err error)

// Sleep is used by the "sleep" command; when it is nil the command prints
// nothing and does not wait.
var Sleep Sleeper

func (s *Shell) cmdSleep(args []string) {
	switch len(args) {
	case 0:
		s.println("sleep: <ms> argument required")
	case 1:
		ms, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			s.println("sleep: error: " + err.Error())
			return
		}
		if Sleep == nil {
			return
		}
		elapsed, err := Sleep(uint32(ms))
		if err != nil {
			s.println("sleep: error: " + err.Error())
			return
		}
		s.println("slept for " + strconv.FormatUint(elapsed, 10) + "ms")
	default:
		s.println("sleep: too many arguments")
	}
}
