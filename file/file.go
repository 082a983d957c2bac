/*
 * file.go, part of goAton.
 *
 * Copyright 2025 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package file contains functions to find, copy, move and remove files,
//and to read, write and persist data. Files ending in .zst (z-standard) or
//.gz (gzip) are transparently compressed and decompressed.
package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	aton "github.com/rmera/goaton"
	"go.uber.org/zap"
)

// Get returns path if it is a regular file. If path is a folder, Get looks
// inside it for the only file whose name contains all the strings in include
// and none of the strings in exclude, and returns its full path. It is an error
// if no file, or more than one, matches.
func Get(path string, include []string, exclude []string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", Error{err.Error(), path, []string{"Get"}, true}
	}
	if !info.IsDir() {
		return path, nil
	}
	files, err := List(path, include, exclude, true)
	if err != nil {
		return "", errDecorate(err, "Get")
	}
	if len(files) == 0 {
		return "", Error{fmt.Sprintf("%s: include %v exclude %v", ErrNoMatch, include, exclude), path, []string{"Get"}, true}
	}
	if len(files) > 1 {
		return "", Error{fmt.Sprintf("%s: %s", ErrManyMatches, strings.Join(files, ", ")), path, []string{"Get"}, true}
	}
	return files[0], nil
}

// List returns the sorted names of the regular files in folder whose names contain all the
// strings in include and none of the strings in exclude. The names are joined with folder
// if abs is true.
func List(folder string, include, exclude []string, abs bool) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, Error{err.Error(), folder, []string{"List"}, true}
	}
	ret := make([]string, 0, len(entries))
	for _, v := range entries {
		if v.IsDir() {
			continue
		}
		name := v.Name()
		if !matches(name, include, exclude) {
			continue
		}
		if abs {
			name = filepath.Join(folder, name)
		}
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret, nil
}

func matches(name string, include, exclude []string) bool {
	for _, v := range include {
		if !strings.Contains(name, v) {
			return false
		}
	}
	for _, v := range exclude {
		if v != "" && strings.Contains(name, v) {
			return false
		}
	}
	return true
}

// Copy copies the file in the origin path to destination, overwriting it.
func Copy(origin, destination string) error {
	in, err := os.Open(origin)
	if err != nil {
		return Error{err.Error(), origin, []string{"Copy"}, true}
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return Error{err.Error(), origin, []string{"Copy"}, true}
	}
	out, err := os.OpenFile(destination, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return Error{err.Error(), destination, []string{"Copy"}, true}
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return Error{err.Error(), destination, []string{"Copy"}, true}
	}
	aton.L().Debug("copied file", zap.String("from", origin), zap.String("to", destination))
	return out.Close()
}

// Move moves the file in origin to destination.
func Move(origin, destination string) error {
	if err := os.Rename(origin, destination); err != nil {
		//rename doesn't work across filesystems.
		if err := Copy(origin, destination); err != nil {
			return errDecorate(err, "Move")
		}
		return Remove(origin)
	}
	return nil
}

// Remove deletes a file or a folder with all its contents. Removing a
// path that doesn't exist is not an error.
func Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return Error{err.Error(), path, []string{"Remove"}, true}
	}
	return nil
}

// RenameOnFolder replaces the string old with new in the names of all the
// files in folder.
func RenameOnFolder(old, new, folder string) error {
	files, err := List(folder, []string{old}, nil, false)
	if err != nil {
		return errDecorate(err, "RenameOnFolder")
	}
	for _, f := range files {
		err := os.Rename(filepath.Join(folder, f), filepath.Join(folder, strings.ReplaceAll(f, old, new)))
		if err != nil {
			return Error{err.Error(), f, []string{"RenameOnFolder"}, true}
		}
	}
	return nil
}

// CopyToFolders copies the files in folder that match include and exclude each one to
// a new subfolder of folder, named after the file without its extension.
func CopyToFolders(folder string, include, exclude []string) error {
	files, err := List(folder, include, exclude, false)
	if err != nil {
		return errDecorate(err, "CopyToFolders")
	}
	for _, f := range files {
		sub := filepath.Join(folder, strings.TrimSuffix(f, filepath.Ext(f)))
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return Error{err.Error(), sub, []string{"CopyToFolders"}, true}
		}
		if err := Copy(filepath.Join(folder, f), filepath.Join(sub, f)); err != nil {
			return errDecorate(err, "CopyToFolders")
		}
	}
	return nil
}

// Open opens the file for reading. Compressed files are decompressed on the fly,
// according to their extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"Open"}, true}
	}
	switch compression(path) {
	case "zst":
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), path, []string{"zstd.NewReader", "Open"}, true}
		}
		return &readCloser{r.IOReadCloser(), f}, nil
	case "gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), path, []string{"gzip.NewReader", "Open"}, true}
		}
		return &readCloser{r, f}, nil
	}
	return f, nil
}

// Read returns the whole (decompressed) content of a file.
func Read(path string) ([]byte, error) {
	r, err := Open(path)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"Read"}, true}
	}
	return b, nil
}

// WriteAtomic writes data to path, compressing it if the extension requires it. The
// data is first written to a temporary file in the same folder, which is then renamed,
// so path is never left half-written.
func WriteAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return Error{err.Error(), path, []string{"WriteAtomic"}, true}
	}
	w, err := compressor(path, f)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return Error{err.Error(), path, []string{"WriteAtomic"}, true}
	}
	_, err = w.Write(data)
	if err == nil {
		err = w.Close()
	}
	if err == nil && w != io.WriteCloser(f) {
		err = f.Close()
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return Error{err.Error(), path, []string{"WriteAtomic"}, true}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return Error{err.Error(), path, []string{"WriteAtomic"}, true}
	}
	return nil
}

func compressor(path string, f *os.File) (io.WriteCloser, error) {
	switch compression(path) {
	case "zst":
		return zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case "gz":
		return gzip.NewWriterLevel(f, gzip.BestCompression)
	}
	return f, nil
}

func compression(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return "zst"
	case ".gz":
		return "gz"
	}
	return ""
}

//Closes both the decompressor and the underlying file.
type readCloser struct {
	io.ReadCloser
	f *os.File
}

func (r *readCloser) Close() error {
	err := r.ReadCloser.Close()
	if err2 := r.f.Close(); err == nil {
		err = err2
	}
	return err
}
