/*
 * edit.go, part of goAton.
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

package txt

import (
	"regexp"
	"sort"
	"strings"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/file"
	"go.uber.org/zap"
)

//All the edit functions read the whole file, modify it in memory, and write it
//back with file.WriteAtomic.

//document is a file split in lines.
type document struct {
	path     string
	lines    []string
	trailing bool //the file ends with a newline
}

func readDocument(path string) (*document, error) {
	b, err := file.Read(path)
	if err != nil {
		return nil, err
	}
	return newDocument(path, string(b)), nil
}

func newDocument(path, content string) *document {
	d := &document{path: path}
	d.trailing = strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" && !d.trailing {
		return d
	}
	d.lines = strings.Split(content, "\n")
	return d
}

func (d *document) String() string {
	s := strings.Join(d.lines, "\n")
	if d.trailing && len(d.lines) > 0 {
		s += "\n"
	}
	return s
}

func (d *document) write(caller string) error {
	if err := file.WriteAtomic(d.path, []byte(d.String())); err != nil {
		return errDecorate(err, caller)
	}
	aton.L().Debug("edited file", zap.String("file", d.path), zap.String("op", caller))
	return nil
}

// insert puts the given lines before the index i, which is clamped to the document.
func (d *document) insert(i int, text string) {
	if i < 0 {
		i = 0
	}
	if i > len(d.lines) {
		i = len(d.lines)
	}
	newlines := strings.Split(text, "\n")
	l := make([]string, 0, len(d.lines)+len(newlines))
	l = append(l, d.lines[:i]...)
	l = append(l, newlines...)
	l = append(l, d.lines[i:]...)
	d.lines = l
}

// remove deletes the lines from i to j, both included, clamped to the document.
func (d *document) remove(i, j int) {
	if i < 0 {
		i = 0
	}
	if j >= len(d.lines) {
		j = len(d.lines) - 1
	}
	if i > j {
		return
	}
	d.lines = append(d.lines[:i], d.lines[j+1:]...)
}

//matcher matches a key in a line, either literally or as a regular expression.
type matcher func(string) bool

func newMatcher(key string, regex bool) (matcher, error) {
	if !regex {
		return func(s string) bool { return strings.Contains(s, key) }, nil
	}
	re, err := regexp.Compile(key)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"regexp.Compile"}, true}
	}
	return re.MatchString, nil
}

// find returns the indexes of the lines matching key. See the package doc for matches.
func (d *document) find(key string, matches int, regex bool) ([]int, error) {
	m, err := newMatcher(key, regex)
	if err != nil {
		return nil, err
	}
	ret := make([]int, 0, 2)
	for i, l := range d.lines {
		if m(l) {
			ret = append(ret, i)
		}
	}
	if matches > 0 && len(ret) > matches {
		ret = ret[:matches]
	} else if matches < 0 && len(ret) > -matches {
		ret = ret[len(ret)+matches:]
	}
	return ret, nil
}

// InsertAt inserts text as new line(s) in the file in path, so the first
// inserted line ends up with the index position. Negative positions count from the
// end of the file: -1 appends the text after the last line.
func InsertAt(path, text string, position int) error {
	d, err := readDocument(path)
	if err != nil {
		return errDecorate(err, "InsertAt")
	}
	if position < 0 {
		position = len(d.lines) + position + 1
	}
	d.insert(position, text)
	return d.write("InsertAt")
}

// InsertUnder inserts text in new line(s) under the lines containing key.
// insertions has the same meaning as the matches argument of FindPos.
// The text is inserted after skipping skips lines below the key line; a negative
// skips inserts the text above, where -1 is immediately before the key line.
func InsertUnder(path, key, text string, insertions, skips int, regex bool) error {
	d, err := readDocument(path)
	if err != nil {
		return errDecorate(err, "InsertUnder")
	}
	idx, err := d.find(key, insertions, regex)
	if err != nil {
		return errDecorate(err, "InsertUnder")
	}
	if len(idx) == 0 {
		return Error{ErrNotFound + ": " + key, path, []string{"InsertUnder"}, false}
	}
	//From the bottom up, so the indexes of the remaining lines don't change.
	for i := len(idx) - 1; i >= 0; i-- {
		d.insert(idx[i]+1+skips, text)
	}
	return d.write("InsertUnder")
}

// Replace replaces the key with text in the file in path. replacements has the
// same meaning as the matches argument in FindPos.
func Replace(path, key, text string, replacements int, regex bool) error {
	content, err := file.Read(path)
	if err != nil {
		return errDecorate(err, "Replace")
	}
	var spans []Span
	if regex {
		spans, err = FindPosRegex(content, key, replacements)
		if err != nil {
			return errDecorate(err, "Replace")
		}
	} else {
		spans = FindPos(content, key, replacements)
	}
	if len(spans) == 0 {
		return Error{ErrNotFound + ": " + key, path, []string{"Replace"}, false}
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.Write(content[prev:s.Start])
		b.WriteString(text)
		prev = s.End
	}
	b.Write(content[prev:])
	d := newDocument(path, b.String())
	return d.write("Replace")
}

// ReplaceLine replaces the full lines containing key with text. If skips is not zero,
// the line that many lines below (or above, if negative) is replaced instead.
// additional more lines below the replaced one (or above, if negative) are also removed.
// An empty text deletes the lines.
func ReplaceLine(path, key, text string, replacements, skips, additional int, regex bool) error {
	d, err := readDocument(path)
	if err != nil {
		return errDecorate(err, "ReplaceLine")
	}
	idx, err := d.find(key, replacements, regex)
	if err != nil {
		return errDecorate(err, "ReplaceLine")
	}
	if len(idx) == 0 {
		return Error{ErrNotFound + ": " + key, path, []string{"ReplaceLine"}, false}
	}
	for i := len(idx) - 1; i >= 0; i-- {
		target := idx[i] + skips
		if target < 0 || target >= len(d.lines) {
			continue
		}
		first, last := target, target+additional
		if additional < 0 {
			first, last = target+additional, target
		}
		d.remove(first, last)
		if text != "" {
			if first < 0 {
				first = 0
			}
			d.insert(first, text)
		}
	}
	return d.write("ReplaceLine")
}

// ReplaceBetween replaces the lines between the first line containing key1 and the next line with
// key2 with text. The key lines are kept unless deleteKeys is true. If fromEnd is true, the last
// key1 in the file is used instead of the first one.
func ReplaceBetween(path, key1, key2, text string, deleteKeys, fromEnd, regex bool) error {
	content, err := file.Read(path)
	if err != nil {
		return errDecorate(err, "ReplaceBetween")
	}
	match := 1
	if fromEnd {
		match = -1
	}
	s, err := BetweenPos(content, key1, key2, deleteKeys, match, regex)
	if err != nil {
		return errDecorate(err, "ReplaceBetween")
	}
	if !s.Found() {
		return Error{ErrNotFound + ": " + key1, path, []string{"ReplaceBetween"}, false}
	}
	start, end := s.Start, s.End
	//With the keys kept, an empty span sits at the beginning of the key2 line
	//(or at the end of the content), so the text needs its own line.
	replacement := text
	if text != "" && !deleteKeys && start == end && end < len(content) {
		replacement += "\n"
	}
	if text == "" && end < len(content) && content[end] == '\n' {
		end++ //drop the empty line that would remain
	}
	newcontent := string(content[:start]) + replacement + string(content[end:])
	return newDocument(path, newcontent).write("ReplaceBetween")
}

// DeleteUnder deletes all the lines below the match-th line containing key, skipping skips lines.
// With a negative skips the key line itself (and the lines above, down to skips) are deleted too.
func DeleteUnder(path, key string, match, skips int, regex bool) error {
	d, err := readDocument(path)
	if err != nil {
		return errDecorate(err, "DeleteUnder")
	}
	if match == 0 {
		match = 1
	}
	idx, err := d.find(key, match, regex)
	if err != nil {
		return errDecorate(err, "DeleteUnder")
	}
	if (match > 0 && len(idx) < match) || len(idx) == 0 {
		return Error{ErrNotFound + ": " + key, path, []string{"DeleteUnder"}, false}
	}
	i := idx[len(idx)-1]
	if match < 0 {
		i = idx[0]
	}
	d.remove(i+1+skips, len(d.lines)-1)
	return d.write("DeleteUnder")
}

// CorrectWithMap replaces, in the file in path, each key of the correct map by its value.
// Keys are processed in lexicographical order.
func CorrectWithMap(path string, correct map[string]string) error {
	b, err := file.Read(path)
	if err != nil {
		return errDecorate(err, "CorrectWithMap")
	}
	content := string(b)
	keys := make([]string, 0, len(correct))
	for k := range correct {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		content = strings.ReplaceAll(content, k, correct[k])
	}
	return newDocument(path, content).write("CorrectWithMap")
}

// FromTemplate copies the old file into new, replacing the keys in correct (see CorrectWithMap),
// and adds the comment, if not empty, as the first line.
func FromTemplate(old, new string, correct map[string]string, comment string) error {
	if err := file.Copy(old, new); err != nil {
		return errDecorate(err, "FromTemplate")
	}
	if len(correct) > 0 {
		if err := CorrectWithMap(new, correct); err != nil {
			return errDecorate(err, "FromTemplate")
		}
	}
	if comment != "" {
		if err := InsertAt(new, comment, 0); err != nil {
			return errDecorate(err, "FromTemplate")
		}
	}
	return nil
}
