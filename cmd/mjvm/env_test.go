/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import "testing"

func TestGetEnvArgsDeclarationOrder(t *testing.T) {
	t.Setenv("JAVA_TOOL_OPTIONS", "-Dfirst")
	t.Setenv("_JAVA_OPTIONS", "-Dsecond")
	t.Setenv("JDK_JAVA_OPTIONS", "-Dthird")
	if got := getEnvArgs(); got != "-Dfirst -Dsecond -Dthird" {
		t.Fatalf("getEnvArgs() = %q; want the three variables in declaration order", got)
	}
}

func TestGetEnvArgsSkipsUnset(t *testing.T) {
	t.Setenv("JAVA_TOOL_OPTIONS", "-Dfirst")
	t.Setenv("_JAVA_OPTIONS", "")
	t.Setenv("JDK_JAVA_OPTIONS", "-Dthird")
	// a missing middle variable collapses to one space, not two
	if got := getEnvArgs(); got != "-Dfirst -Dthird" {
		t.Fatalf("getEnvArgs() = %q; want %q", got, "-Dfirst -Dthird")
	}
}

func TestGetEnvArgsAllUnset(t *testing.T) {
	t.Setenv("JAVA_TOOL_OPTIONS", "")
	t.Setenv("_JAVA_OPTIONS", "")
	t.Setenv("JDK_JAVA_OPTIONS", "")
	if got := getEnvArgs(); got != "" {
		t.Fatalf("getEnvArgs() = %q; want empty", got)
	}
}

func TestJavaArgs(t *testing.T) {
	got := javaArgs([]string{"Main", "a", "b"}, "-Dx -Dy")
	want := []string{"-Dx", "-Dy", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("javaArgs = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("javaArgs = %v; want %v", got, want)
		}
	}

	rest := javaArgs([]string{"Main"}, "")
	if len(rest) != 0 {
		t.Fatalf("javaArgs with no extras = %v; want empty", rest)
	}
}
