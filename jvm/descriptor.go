/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "mjvm/excnames"

// parseParamTags walks a method descriptor's parameter list, e.g.
// "(IJLjava/lang/String;[D)V", and returns one tag byte per parameter in
// declaration order: 'J'/'D' for the two category-2 types, 'A' for both
// object and array references, and the primitive's own tag otherwise.
// Only the parameter list is consulted; the return type after ')' is
// read separately by returnTag.
func parseParamTags(descriptor string) ([]byte, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return nil, excnames.New(excnames.InvalidFormat, "descriptor missing '('")
	}
	var tags []byte
	i := 1
	for i < len(descriptor) && descriptor[i] != ')' {
		tag, next, err := parseOneType(descriptor, i)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
		i = next
	}
	if i >= len(descriptor) {
		return nil, excnames.New(excnames.InvalidFormat, "descriptor missing ')'")
	}
	return tags, nil
}

// returnTag returns the tag of the value after ')' ('V' for void).
func returnTag(descriptor string) (byte, error) {
	i := 0
	for i < len(descriptor) && descriptor[i] != ')' {
		i++
	}
	if i+1 >= len(descriptor) {
		return 0, excnames.New(excnames.InvalidFormat, "descriptor missing return type")
	}
	ret := descriptor[i+1]
	if ret == 'V' {
		return 'V', nil
	}
	tag, _, err := parseOneType(descriptor, i+1)
	return tag, err
}

// parseOneType reads one field descriptor starting at s[i], returning
// its collapsed tag ('A' for L...; and [...;) and the index just past it.
func parseOneType(s string, i int) (byte, int, error) {
	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return s[i], i + 1, nil
	case 'L':
		j := i + 1
		for j < len(s) && s[j] != ';' {
			j++
		}
		if j >= len(s) {
			return 0, 0, excnames.New(excnames.InvalidFormat, "unterminated class descriptor")
		}
		return 'A', j + 1, nil
	case '[':
		j := i + 1
		for j < len(s) && s[j] == '[' {
			j++
		}
		if j >= len(s) {
			return 0, 0, excnames.New(excnames.InvalidFormat, "truncated array descriptor")
		}
		_, next, err := parseOneType(s, j)
		if err != nil {
			return 0, 0, err
		}
		return 'A', next, nil
	default:
		return 0, 0, excnames.New(excnames.InvalidFormat, "unrecognized descriptor character")
	}
}

// isCategory2 reports whether a parsed tag occupies two local-variable
// indices for slot-numbering purposes.
func isCategory2(tag byte) bool { return tag == 'J' || tag == 'D' }
