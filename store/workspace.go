package store

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	SESSION_SUFFIX  = ".session"   // Directory suffix of a session.
	SESSION_PROGRAM = "program.sz" // Assembly source of a session.
	SESSION_MEMORY  = "memory.mem" // Binary memory image of a session.
)

var reSessionName = regexp.MustCompile(`(?i)^[a-z0-9_-]+$`)

// ValidSessionName returns true for names that can be stored as a
// NAME.session directory.
func ValidSessionName(name string) bool {
	return reSessionName.MatchString(name)
}

// Session is a program source with its last memory image.
type Session struct {
	Program string
	Image   *Image
}

// Unmarshal reads the session files. The memory image is optional.
func (session *Session) Unmarshal(filesys fs.FS) (err error) {
	source, err := fs.ReadFile(filesys, SESSION_PROGRAM)
	if err != nil {
		return
	}
	session.Program = string(source)

	file, err := filesys.Open(SESSION_MEMORY)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			session.Image = nil
			err = nil
		}
		return
	}
	defer file.Close()

	image := &Image{Format: FORMAT_BINARY}
	err = image.Unmarshal(file)
	if err != nil {
		return
	}
	session.Image = image

	return
}

// Marshal writes the session files.
func (session *Session) Marshal(filesys CreateFS) (err error) {
	err = writeFile(filesys, SESSION_PROGRAM, func(file io.Writer) error {
		_, err := io.WriteString(file, session.Program)
		return err
	})
	if err != nil {
		return
	}

	if session.Image == nil {
		return
	}

	image := &Image{Format: FORMAT_BINARY, Memory: session.Image.Memory}
	err = writeFile(filesys, SESSION_MEMORY, image.Marshal)

	return
}

func writeFile(filesys CreateFS, name string, write func(io.Writer) error) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	err = write(file)
	err = errors.Join(err, file.Close())

	return
}

// Workspace is a collection of named sessions, stored as NAME.session
// directories.
type Workspace struct {
	Verbose  bool
	Sessions map[string](*Session)
}

// Session returns a named session.
func (ws *Workspace) Session(name string) (session *Session, err error) {
	session, ok := ws.Sessions[name]
	if !ok {
		err = ErrSessionMissing(name)
	}
	return
}

// Put adds or replaces a named session.
func (ws *Workspace) Put(name string, session *Session) (err error) {
	if !ValidSessionName(name) {
		err = ErrSessionName(name)
		return
	}
	if ws.Sessions == nil {
		ws.Sessions = make(map[string](*Session))
	}
	ws.Sessions[name] = session
	return
}

// Unmarshal loads all session directories found in a file system.
func (ws *Workspace) Unmarshal(filesys fs.FS) (err error) {
	if ws.Sessions == nil {
		ws.Sessions = make(map[string](*Session))
	}

	return fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err_in error) (err error) {
		if err_in != nil {
			err = err_in
			return
		}
		if !d.IsDir() {
			return
		}
		name := d.Name()
		if filepath.Ext(name) != SESSION_SUFFIX {
			return
		}
		key := strings.TrimSuffix(name, SESSION_SUFFIX)
		if !ValidSessionName(key) {
			return
		}

		subsys, err := fs.Sub(filesys, path)
		if err != nil {
			return
		}

		session := &Session{}
		err = session.Unmarshal(subsys)
		if err != nil {
			return
		}

		if ws.Verbose {
			log.Printf("workspace: session %v loaded", key)
		}
		ws.Sessions[key] = session

		err = fs.SkipDir
		return
	})
}

// Marshal writes every session, creating its directory when needed.
func (ws *Workspace) Marshal(filesys CreateFS) (err error) {
	for name := range ws.Sessions {
		if !ValidSessionName(name) {
			return ErrSessionName(name)
		}
	}

	for name, session := range ws.Sessions {
		var subsys CreateFS
		dir_name := name + SESSION_SUFFIX
		subsys, err = filesys.Sub(dir_name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return
			}
			err = filesys.Mkdir(dir_name, 0755)
			if err != nil {
				return
			}
			subsys, err = filesys.Sub(dir_name)
			if err != nil {
				return
			}
		}

		err = session.Marshal(subsys)
		if err != nil {
			return
		}

		if ws.Verbose {
			log.Printf("workspace: session %v saved", name)
		}
	}

	return
}
