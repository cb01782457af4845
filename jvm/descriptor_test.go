/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "testing"

func TestParseParamTags(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"()V", ""},
		{"(I)V", "I"},
		{"(D)D", "D"},
		{"(IJLjava/lang/String;[D)V", "IJAA"},
		{"([Ljava/lang/String;)J", "A"},
		{"([[I)V", "A"},
		{"(BCSZFDJI)V", "BCSZFDJI"},
	}
	for _, tt := range tests {
		tags, err := parseParamTags(tt.desc)
		if err != nil {
			t.Fatalf("parseParamTags(%q): %v", tt.desc, err)
		}
		if string(tags) != tt.want {
			t.Fatalf("parseParamTags(%q) = %q; want %q", tt.desc, tags, tt.want)
		}
	}
}

func TestParseParamTagsMalformed(t *testing.T) {
	for _, desc := range []string{"", "I)V", "(I", "(Ljava/lang/String)V", "(Q)V", "(["} {
		if _, err := parseParamTags(desc); err == nil {
			t.Fatalf("parseParamTags(%q): got nil error", desc)
		}
	}
}

func TestReturnTag(t *testing.T) {
	tests := []struct {
		desc string
		want byte
	}{
		{"()V", 'V'},
		{"(D)D", 'D'},
		{"([Ljava/lang/String;)J", 'J'},
		{"()Ljava/lang/String;", 'A'},
		{"()[I", 'A'},
	}
	for _, tt := range tests {
		tag, err := returnTag(tt.desc)
		if err != nil {
			t.Fatalf("returnTag(%q): %v", tt.desc, err)
		}
		if tag != tt.want {
			t.Fatalf("returnTag(%q) = %q; want %q", tt.desc, tag, tt.want)
		}
	}
}

func TestIsCategory2Tags(t *testing.T) {
	for _, tag := range []byte{'J', 'D'} {
		if !isCategory2(tag) {
			t.Fatalf("isCategory2(%q) = false; want true", tag)
		}
	}
	for _, tag := range []byte{'I', 'F', 'A', 'Z', 'B', 'S', 'C'} {
		if isCategory2(tag) {
			t.Fatalf("isCategory2(%q) = true; want false", tag)
		}
	}
}
