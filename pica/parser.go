// Copyright 2026 The rvkc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pica parses bibliographic records in the K10plus PICA exchange
// text format into the core record model.
package pica

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/fachref/rvkc/core"
)

// ErrNoRecord is returned when the input contains no parseable PICA line.
var ErrNoRecord = errors.New("no record found in input")

// maxLineSize accommodates long abstract fields on a single line.
const maxLineSize = 1024 * 1024

var (
	// lineRe matches one field line: a 4-digit tag, an optional
	// occurrence suffix, whitespace, then the field content.
	lineRe = regexp.MustCompile(`^(\d{4})(?:/\d{2,3})?\s+(.+)$`)

	// subfieldRe matches $<code><value> subfields.
	subfieldRe = regexp.MustCompile(`\$([a-z0-9])([^$]*)`)
)

// Parse reads one PICA record from r. Unknown tags are ignored; an input
// without a single recognizable field line yields ErrNoRecord.
func Parse(r io.Reader) (*core.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	rec := &core.Record{}
	var raw strings.Builder
	matched := false

	for scanner.Scan() {
		line := scanner.Text()
		raw.WriteString(line)
		raw.WriteString("\n")

		groups := lineRe.FindStringSubmatch(strings.TrimSpace(line))
		if groups == nil {
			continue
		}
		matched = true
		applyField(rec, groups[1], parseSubfields(groups[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNoRecord
	}

	rec.Raw = raw.String()
	return rec, nil
}

// subfields holds the repeatable code/value pairs of one field line.
type subfields struct {
	codes  []string
	values []string
}

func parseSubfields(content string) subfields {
	var sf subfields
	for _, groups := range subfieldRe.FindAllStringSubmatch(content, -1) {
		sf.codes = append(sf.codes, groups[1])
		sf.values = append(sf.values, strings.TrimSpace(groups[2]))
	}
	// A line without subfield markers is a bare $a value.
	if len(sf.codes) == 0 && strings.TrimSpace(content) != "" {
		sf.codes = append(sf.codes, "a")
		sf.values = append(sf.values, strings.TrimSpace(content))
	}
	return sf
}

// first returns the first value of a subfield code, empty when absent.
func (sf subfields) first(code string) string {
	for i, c := range sf.codes {
		if c == code {
			return sf.values[i]
		}
	}
	return ""
}

// all returns every non-empty value of a subfield code.
func (sf subfields) all(code string) []string {
	var values []string
	for i, c := range sf.codes {
		if c == code && sf.values[i] != "" {
			values = append(values, sf.values[i])
		}
	}
	return values
}

// applyField maps one PICA field onto the record. The tag set covers what
// classification needs; everything else is ignored.
func applyField(rec *core.Record, tag string, sf subfields) {
	switch tag {
	case "4000": // title, with subtitle
		title := sf.first("a")
		if subtitle := sf.first("d"); subtitle != "" {
			title = title + " : " + subtitle
		}
		if title != "" {
			rec.Title = title
		}
	case "3000", "3010": // authors, repeatable
		if author := sf.first("a"); author != "" {
			rec.Authors = append(rec.Authors, author)
		}
	case "1100": // year of publication
		if year := sf.first("a"); year != "" {
			rec.Year = year
		}
	case "4030": // publisher
		if publisher := sf.first("n"); publisher != "" {
			rec.Publisher = publisher
		} else if publisher := sf.first("a"); publisher != "" {
			rec.Publisher = publisher
		}
	case "4207": // abstract
		if abstract := sf.first("a"); abstract != "" {
			rec.Abstract = abstract
		}
	case "5010": // DDC, useful as a subject signal
		rec.Subjects = append(rec.Subjects, sf.all("a")...)
	case "5090": // existing RVK notations, with register keywords
		rec.Notations = append(rec.Notations, sf.all("a")...)
		rec.Subjects = append(rec.Subjects, sf.all("h")...)
		rec.Subjects = append(rec.Subjects, sf.all("j")...)
	case "5550": // keywords
		rec.Subjects = append(rec.Subjects, sf.all("a")...)
	}
}

// SplitRecords splits a multi-record download on blank-line boundaries.
// Each returned block parses individually with Parse.
func SplitRecords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var blocks []string
	var current strings.Builder
	flush := func() {
		if strings.TrimSpace(current.String()) != "" {
			blocks = append(blocks, current.String())
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return blocks, nil
}
