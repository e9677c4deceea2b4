package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cayleygraph/idiom/idiom"
)

// parsePath parses a small dotted/bracketed expression syntax into an
// idiom.Path. This is a CLI-local convenience only, not a general path
// parser: it supports a deliberately small subset — field access
// ("field"), array indexing ("[0]"), "*", "first", "last", "?" and a
// trailing "??" flatten marker — enough to drive the evaluator from a
// terminal without reimplementing a full query-language parser.
//
// A path looks like: friends[0].name, tags.*, nested.first?, items??
func parsePath(expr string) (idiom.Path, error) {
	var path idiom.Path
	for _, raw := range splitSegments(expr) {
		seg := strings.TrimSpace(raw)
		if seg == "" {
			continue
		}
		optional := false
		if strings.HasSuffix(seg, "?") && !strings.HasSuffix(seg, "??") {
			optional = true
			seg = strings.TrimSuffix(seg, "?")
		}
		flatten := strings.HasSuffix(seg, "??")
		if flatten {
			seg = strings.TrimSuffix(seg, "??")
		}

		parts, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		path = append(path, parts...)

		if optional {
			path = append(path, idiom.OptionalPart{})
		}
		if flatten {
			path = append(path, idiom.FlattenPart{})
		}
	}
	return path, nil
}

// parseSegment parses one dot-separated segment, which may be a bare name
// ("name"), a bare index ("[0]"), a bare keyword ("*", "first", "last",
// "@"), or a name followed by one or more index suffixes ("name[0][1]").
func parseSegment(seg string) (idiom.Path, error) {
	switch seg {
	case "*":
		return idiom.Path{idiom.AllPart{}}, nil
	case "first":
		return idiom.Path{idiom.FirstPart{}}, nil
	case "last":
		return idiom.Path{idiom.LastPart{}}, nil
	case "@":
		return idiom.Path{idiom.DocPart{}}, nil
	}

	bracket := strings.IndexByte(seg, '[')
	if bracket < 0 {
		return idiom.Path{idiom.FieldPart{Name: seg}}, nil
	}

	var out idiom.Path
	if bracket > 0 {
		out = append(out, idiom.FieldPart{Name: seg[:bracket]})
	}
	rest := seg[bracket:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil, fmt.Errorf("idiomget: invalid path segment %q", seg)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("idiomget: unterminated index in %q", seg)
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return nil, fmt.Errorf("idiomget: invalid index in %q: %w", seg, err)
		}
		out = append(out, idiom.IndexPart{Index: n})
		rest = rest[end+1:]
	}
	return out, nil
}

// splitSegments splits on "." while keeping a leading "[...]" attached to
// the segment it indexes (so "friends[0].name" splits into "friends[0]"
// and "name", not "friends" / "[0]" / "name").
func splitSegments(expr string) []string {
	var segs []string
	var cur strings.Builder
	depth := 0
	for _, r := range expr {
		switch {
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			depth--
			cur.WriteRune(r)
		case r == '.' && depth == 0:
			segs = append(segs, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	segs = append(segs, cur.String())
	return segs
}
