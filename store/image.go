// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package store persists Simplez memory images and editing sessions.
package store

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ezrec/simplez/cpu"
)

const (
	IMAGE_BINARY_SIZE = cpu.MEMORY_SIZE * 2 // Bytes of a binary image.
)

// Format is the on-disk encoding of an image.
type Format int

const (
	FORMAT_BINARY = Format(0) // 512 big-endian 16-bit words.
	FORMAT_TEXT   = Format(1) // One octal word per line.
)

// formatMap maps file extensions to formats.
var formatMap = map[string]Format{
	".mem": FORMAT_BINARY,
	".bin": FORMAT_BINARY,
	".oct": FORMAT_TEXT,
	".txt": FORMAT_TEXT,
}

// FormatOf picks the format of a file from its extension.
func FormatOf(name string) (format Format, err error) {
	format, ok := formatMap[strings.ToLower(filepath.Ext(name))]
	if !ok {
		err = ErrImageFormat
	}
	return
}

// ParseFormat parses a format name, 'bin' or 'text'.
func ParseFormat(name string) (format Format, err error) {
	switch strings.ToLower(name) {
	case "bin", "binary":
		format = FORMAT_BINARY
	case "text", "oct", "octal":
		format = FORMAT_TEXT
	default:
		err = ErrImageFormat
	}
	return
}

// Image is a memory image with its storage format.
type Image struct {
	Format Format
	Memory cpu.Memory
}

// MarshalBinary encodes the image as 512 big-endian words.
func (img *Image) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 0, IMAGE_BINARY_SIZE)
	for _, word := range img.Memory {
		data = binary.BigEndian.AppendUint16(data, uint16(word))
	}
	return
}

// UnmarshalBinary decodes 512 big-endian words.
func (img *Image) UnmarshalBinary(data []byte) (err error) {
	if len(data) != IMAGE_BINARY_SIZE {
		err = ErrImageSize
		return
	}

	var mem cpu.Memory
	for n := range mem {
		value := binary.BigEndian.Uint16(data[n*2:])
		if value > cpu.WORD_MASK {
			err = ErrImageWord{Address: cpu.Address(n), Value: int(value)}
			return
		}
		mem[n] = cpu.Word(value)
	}

	img.Memory = mem

	return
}

// MarshalText encodes the image as one octal word per line.
func (img *Image) MarshalText() (text []byte, err error) {
	var buff bytes.Buffer
	for _, word := range img.Memory {
		fmt.Fprintf(&buff, "%04o\n", uint16(word))
	}
	text = buff.Bytes()
	return
}

// UnmarshalText decodes octal words, one per line. Blank lines and ';'
// comments are ignored, and missing trailing words are zero.
func (img *Image) UnmarshalText(text []byte) (err error) {
	var mem cpu.Memory

	scanner := bufio.NewScanner(bytes.NewReader(text))
	var n int
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), ";")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if n >= len(mem) {
			err = ErrImageSize
			return
		}
		var value uint64
		value, err = strconv.ParseUint(line, 8, 16)
		if err != nil {
			err = errors.Join(ErrImageWord{Address: cpu.Address(n), Text: line}, err)
			return
		}
		if value > cpu.WORD_MASK {
			err = ErrImageWord{Address: cpu.Address(n), Value: int(value)}
			return
		}
		mem[n] = cpu.Word(value)
		n++
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	img.Memory = mem

	return
}

// Marshal writes the image in its format.
func (img *Image) Marshal(file io.Writer) (err error) {
	var data []byte
	switch img.Format {
	case FORMAT_BINARY:
		data, err = img.MarshalBinary()
	case FORMAT_TEXT:
		data, err = img.MarshalText()
	default:
		err = ErrImageFormat
	}
	if err != nil {
		return
	}

	_, err = file.Write(data)

	return
}

// Unmarshal reads an image in its format, replacing the memory.
func (img *Image) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	switch img.Format {
	case FORMAT_BINARY:
		err = img.UnmarshalBinary(data)
	case FORMAT_TEXT:
		err = img.UnmarshalText(data)
	default:
		err = ErrImageFormat
	}

	return
}
