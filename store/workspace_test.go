package store

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/simplez/cpu"
)

// memFS is a CreateFS over a fstest.MapFS.
type memFS struct {
	root fstest.MapFS
	dir  string
}

type memFile struct {
	bytes.Buffer
	root fstest.MapFS
	name string
}

func (file *memFile) Close() error {
	file.root[file.name] = &fstest.MapFile{Data: file.Bytes(), Mode: 0644}
	return nil
}

func (mfs *memFS) Sub(name string) (sub CreateFS, err error) {
	full := path.Join(mfs.dir, name)
	info, err := fs.Stat(mfs.root, full)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = fs.ErrInvalid
		return
	}
	sub = &memFS{root: mfs.root, dir: full}
	return
}

func (mfs *memFS) Create(name string) (file io.WriteCloser, err error) {
	file = &memFile{root: mfs.root, name: path.Join(mfs.dir, name)}
	return
}

func (mfs *memFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	mfs.root[path.Join(mfs.dir, name)] = &fstest.MapFile{Mode: fs.ModeDir | filemode}
	return
}

func TestWorkspaceUnmarshal(t *testing.T) {
	assert := assert.New(t)

	image := &Image{}
	image.Memory[0] = cpu.Word(0o7000)
	data, err := image.MarshalBinary()
	assert.NoError(err)

	filesys := fstest.MapFS{
		"halt.session/program.sz":  {Data: []byte("  halt\n")},
		"halt.session/memory.mem":  {Data: data},
		"empty.session/program.sz": {Data: []byte("")},
		"notes/program.sz":         {Data: []byte("ignored")},
		"README":                   {Data: []byte("ignored")},
	}

	ws := &Workspace{}
	err = ws.Unmarshal(filesys)
	assert.NoError(err)
	assert.Len(ws.Sessions, 2)

	session, err := ws.Session("halt")
	assert.NoError(err)
	assert.Equal("  halt\n", session.Program)
	if assert.NotNil(session.Image) {
		assert.Equal(cpu.Word(0o7000), session.Image.Memory[0])
	}

	session, err = ws.Session("empty")
	assert.NoError(err)
	assert.Nil(session.Image)

	_, err = ws.Session("notes")
	var missing ErrSessionMissing
	assert.True(errors.As(err, &missing))
	assert.Equal(ErrSessionMissing("notes"), missing)
}

func TestWorkspaceUnmarshalBadImage(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"bad.session/program.sz": {Data: []byte("  halt\n")},
		"bad.session/memory.mem": {Data: []byte{0, 1, 2}},
	}

	ws := &Workspace{}
	err := ws.Unmarshal(filesys)
	assert.ErrorIs(err, ErrImageSize)
}

func TestWorkspaceUnmarshalMissingProgram(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"odd.session/memory.mem": {Data: make([]byte, IMAGE_BINARY_SIZE)},
	}

	ws := &Workspace{}
	err := ws.Unmarshal(filesys)
	assert.ErrorIs(err, fs.ErrNotExist)
}

func TestWorkspaceMarshal(t *testing.T) {
	assert := assert.New(t)

	root := fstest.MapFS{}
	mfs := &memFS{root: root}

	image := &Image{}
	image.Memory[1] = cpu.Word(0o1234)

	ws := &Workspace{}
	assert.NoError(ws.Put("count", &Session{Program: "  ld /1\n  halt\n", Image: image}))
	assert.NoError(ws.Put("plain", &Session{Program: "  halt\n"}))

	err := ws.Marshal(mfs)
	assert.NoError(err)

	assert.Equal([]byte("  ld /1\n  halt\n"), root["count.session/program.sz"].Data)
	assert.Len(root["count.session/memory.mem"].Data, IMAGE_BINARY_SIZE)
	assert.Equal([]byte("  halt\n"), root["plain.session/program.sz"].Data)
	assert.Nil(root["plain.session/memory.mem"])

	// Marshal again, over the existing directories.
	err = ws.Marshal(mfs)
	assert.NoError(err)

	// And read it back.
	back := &Workspace{}
	err = back.Unmarshal(root)
	assert.NoError(err)
	assert.Len(back.Sessions, 2)

	session, err := back.Session("count")
	assert.NoError(err)
	assert.Equal("  ld /1\n  halt\n", session.Program)
	if assert.NotNil(session.Image) {
		assert.Equal(image.Memory, session.Image.Memory)
	}
}

func TestWorkspaceSessionName(t *testing.T) {
	assert := assert.New(t)

	ws := &Workspace{}
	for _, name := range []string{"my.prog", "my prog", "../x", "a/b", ""} {
		err := ws.Put(name, &Session{Program: "  halt\n"})
		var bad ErrSessionName
		if assert.True(errors.As(err, &bad), name) {
			assert.Equal(ErrSessionName(name), bad)
		}
	}
	assert.Empty(ws.Sessions)

	assert.NoError(ws.Put("My_Prog-2", &Session{Program: "  halt\n"}))

	// Every stored name loads back.
	root := fstest.MapFS{}
	err := ws.Marshal(&memFS{root: root})
	assert.NoError(err)

	back := &Workspace{}
	err = back.Unmarshal(root)
	assert.NoError(err)
	_, err = back.Session("My_Prog-2")
	assert.NoError(err)

	// Names set behind Put are refused before anything is written.
	ws.Sessions["my.prog"] = &Session{}
	root = fstest.MapFS{}
	err = ws.Marshal(&memFS{root: root})
	var bad ErrSessionName
	if assert.True(errors.As(err, &bad)) {
		assert.Equal(ErrSessionName("my.prog"), bad)
	}
	assert.Empty(root)
}
