/*
 * find.go, part of goAton.
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

//Package txt contains functions to find, extract and edit text in files.
//
//Positions are byte offsets in the (decompressed) file content, given as a
//Span. Functions that find a number of matches take a matches argument:
//0 returns all the matches, a positive n returns the first n, and a negative
//n returns the last |n| matches, always in the order in which they appear in
//the file. Single-match functions take a match index instead, where 1 is the
//first match (0 is also taken as 1) and -1 is the last one.
package txt

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/rmera/goaton/file"
)

// Span is the position of some text, from Start (inclusive) to End (exclusive).
type Span struct {
	Start int
	End   int
}

// NoSpan is returned when nothing was found.
var NoSpan = Span{-1, -1}

// Found returns true unless s is NoSpan.
func (s Span) Found() bool {
	return s != NoSpan
}

// FindPos returns the positions of the literal key in content. See the package
// documentation for the meaning of matches. Matches don't overlap.
func FindPos(content []byte, key string, matches int) []Span {
	k := []byte(key)
	ret := make([]Span, 0, 2)
	if len(k) == 0 {
		return ret
	}
	if matches >= 0 {
		start := 0
		for matches == 0 || len(ret) < matches {
			p := bytes.Index(content[start:], k)
			if p < 0 {
				break
			}
			p += start
			ret = append(ret, Span{p, p + len(k)})
			start = p + len(k)
		}
		return ret
	}
	end := len(content)
	for len(ret) < -matches {
		p := bytes.LastIndex(content[:end], k)
		if p < 0 {
			break
		}
		ret = append(ret, Span{p, p + len(k)})
		end = p
	}
	reverse(ret)
	return ret
}

// FindPosRegex is like FindPos, but key is a regular expression.
func FindPosRegex(content []byte, key string, matches int) ([]Span, error) {
	re, err := regexp.Compile(key)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"regexp.Compile", "FindPosRegex"}, true}
	}
	return findRe(content, re, matches), nil
}

func findRe(content []byte, re *regexp.Regexp, matches int) []Span {
	n := -1
	if matches > 0 {
		n = matches
	}
	all := re.FindAllIndex(content, n)
	if matches < 0 && len(all) > -matches {
		all = all[len(all)+matches:]
	}
	ret := make([]Span, 0, len(all))
	for _, v := range all {
		ret = append(ret, Span{v[0], v[1]})
	}
	return ret
}

// NextPos returns the position of the match-th occurrence of the literal key after
// the position from, or before it if match is negative. If there are fewer
// occurrences than requested, the last one found is returned. NoSpan is returned if
// there are none.
func NextPos(content []byte, from Span, key string, match int) Span {
	if !from.Found() || key == "" {
		return NoSpan
	}
	if match == 0 {
		match = 1
	}
	k := []byte(key)
	ret := NoSpan
	if match > 0 {
		end := from.End
		for i := 0; i < match && end <= len(content); i++ {
			p := bytes.Index(content[end:], k)
			if p < 0 {
				break
			}
			ret = Span{end + p, end + p + len(k)}
			end = ret.End
		}
		return ret
	}
	start := from.Start
	for i := 0; i < -match; i++ {
		p := bytes.LastIndex(content[:start], k)
		if p < 0 {
			break
		}
		ret = Span{p, p + len(k)}
		start = p
	}
	return ret
}

// NextPosRegex is like NextPos, but key is a regular expression.
func NextPosRegex(content []byte, from Span, key string, match int) (Span, error) {
	re, err := regexp.Compile(key)
	if err != nil {
		return NoSpan, Error{err.Error(), "", []string{"regexp.Compile", "NextPosRegex"}, true}
	}
	return nextRe(content, from, re, match), nil
}

func nextRe(content []byte, from Span, re *regexp.Regexp, match int) Span {
	if !from.Found() {
		return NoSpan
	}
	if match == 0 {
		match = 1
	}
	if match > 0 {
		if from.End > len(content) {
			return NoSpan
		}
		all := re.FindAllIndex(content[from.End:], match)
		if len(all) == 0 {
			return NoSpan
		}
		last := all[len(all)-1]
		return Span{from.End + last[0], from.End + last[1]}
	}
	all := re.FindAllIndex(content[:from.Start], -1)
	if len(all) == 0 {
		return NoSpan
	}
	i := len(all) + match
	if i < 0 {
		i = 0
	}
	return Span{all[i][0], all[i][1]}
}

// LinePos returns the position of the full line that contains pos, without the
// newline character. A positive skips returns the line that many lines below,
// a negative one the line above. If the requested line is beyond the end of the
// content, the returned span is empty and placed at the end of the content
// (or at the beginning, when going upwards). NoSpan is returned for NoSpan.
func LinePos(content []byte, pos Span, skips int) Span {
	if !pos.Found() {
		return NoSpan
	}
	start := bytes.LastIndexByte(content[:pos.Start], '\n') + 1
	end := lineEnd(content, pos.End)
	for i := 0; i < skips; i++ {
		if end >= len(content) {
			return Span{len(content), len(content)}
		}
		start = end + 1
		end = lineEnd(content, start)
	}
	for i := 0; i > skips; i-- {
		if start == 0 {
			return Span{0, 0}
		}
		end = start - 1
		start = bytes.LastIndexByte(content[:end], '\n') + 1
	}
	return Span{start, end}
}

//lineEnd returns the index of the first newline at or after from, or the length of content.
func lineEnd(content []byte, from int) int {
	if from >= len(content) {
		return len(content)
	}
	p := bytes.IndexByte(content[from:], '\n')
	if p < 0 {
		return len(content)
	}
	return from + p
}

// BetweenPos returns the position of the text between the line containing the
// match-th occurrence of key1 and the line containing the next occurrence of key2,
// which is searched right after key1, so it can be in the same line. If there are
// fewer occurrences of key1 than match, the last one found is used. The key lines
// are included in the span if includeKeys is true. If key2 is not found, the
// span ends at the end of the content. NoSpan is returned if key1 is not found.
// Keys are regular expressions if regex is true.
func BetweenPos(content []byte, key1, key2 string, includeKeys bool, match int, regex bool) (Span, error) {
	if match == 0 {
		match = 1
	}
	var p1, p2 Span
	if regex {
		re1, err := regexp.Compile(key1)
		if err != nil {
			return NoSpan, Error{err.Error(), "", []string{"regexp.Compile", "BetweenPos"}, true}
		}
		re2, err := regexp.Compile(key2)
		if err != nil {
			return NoSpan, Error{err.Error(), "", []string{"regexp.Compile", "BetweenPos"}, true}
		}
		p1 = pick(findRe(content, re1, match), match)
		if !p1.Found() {
			return NoSpan, nil
		}
		p2 = nextRe(content, p1, re2, 1)
	} else {
		p1 = pick(FindPos(content, key1, match), match)
		if !p1.Found() {
			return NoSpan, nil
		}
		p2 = NextPos(content, p1, key2, 1)
	}
	skip1, skip2 := 0, 0
	if !includeKeys {
		skip1, skip2 = 1, -1
	}
	start := LinePos(content, p1, skip1).Start
	end := len(content)
	if p2.Found() {
		end = LinePos(content, p2, skip2).End
	}
	if end < start {
		end = start
	}
	return Span{start, end}, nil
}

//pick returns the match-th element of a list obtained with the same match argument,
//or the furthest one found if the list is shorter.
func pick(list []Span, match int) Span {
	if len(list) == 0 {
		return NoSpan
	}
	if match < 0 {
		return list[0]
	}
	return list[len(list)-1]
}

// Lines returns the lines of the file in path that contain key, plus additional lines below
// (or above, if additional is negative) each of them. Each match, with its additional lines,
// is returned as a single string with newlines, unless split is true, in which case all the
// lines are returned as separate elements.
func Lines(path, key string, matches, additional int, split, regex bool) ([]string, error) {
	content, err := file.Read(path)
	if err != nil {
		return nil, errDecorate(err, "Lines")
	}
	var spans []Span
	if regex {
		spans, err = FindPosRegex(content, key, matches)
		if err != nil {
			return nil, errDecorate(err, "Lines")
		}
	} else {
		spans = FindPos(content, key, matches)
	}
	ret := make([]string, 0, len(spans))
	for _, v := range spans {
		l := LinePos(content, v, 0)
		start, end := l.Start, l.End
		for i := 0; i < additional && end < len(content); i++ {
			end = lineEnd(content, end+1)
		}
		for i := 0; i > additional && start > 0; i-- {
			start = bytes.LastIndexByte(content[:start-1], '\n') + 1
		}
		ret = append(ret, string(content[start:end]))
	}
	if !split {
		return ret, nil
	}
	splitted := make([]string, 0, len(ret))
	for _, v := range ret {
		splitted = append(splitted, strings.Split(v, "\n")...)
	}
	return splitted, nil
}

// Between returns the text in the file in path between the lines with key1 and key2.
// See BetweenPos. It returns an error if key1 is not found.
func Between(path, key1, key2 string, includeKeys bool, match int, regex bool) (string, error) {
	content, err := file.Read(path)
	if err != nil {
		return "", errDecorate(err, "Between")
	}
	s, err := BetweenPos(content, key1, key2, includeKeys, match, regex)
	if err != nil {
		return "", errDecorate(err, "Between")
	}
	if !s.Found() {
		return "", Error{ErrNotFound + ": " + key1, path, []string{"Between"}, false}
	}
	return string(content[s.Start:s.End]), nil
}

func reverse(s []Span) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
