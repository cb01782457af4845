/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction implements native-code binding: a small library of
// host-language methods that displace bytecode for a handful of
// java.lang classes the core does not otherwise model. Each Go function
// is reachable at a fully qualified method signature through the
// package-level MethodSignatures map: System.currentTimeMillis,
// Math.sqrt, Thread's registerNatives/sleep, and a few siblings.
package gfunction

import (
	"strings"

	"mjvm/classloader"
	"mjvm/excnames"
	"mjvm/types"
	"mjvm/value"
)

// GMeth pairs a native Go implementation with its declared argument
// count. A Value cell is one element regardless of category, so
// ParamSlots documents arity for a reader and is not consulted by Init.
type GMeth struct {
	ParamSlots int
	GFunction  classloader.NativeCallable
}

// MethodSignatures maps a fully qualified "class/Name.method(desc)ret"
// signature to its native binding.
var MethodSignatures = make(map[string]GMeth)

func init() {
	loadLangSystem()
	loadLangMath()
	loadLangThread()
}

// Init builds one synthetic Class per native-bearing class name and
// registers each into registry, so Registry.LookupMethod resolves a
// native call exactly like any other method. Called once at boot,
// before any user class is registered, so that a user class of the same
// name fails with DuplicateClass rather than silently shadowing a
// built-in.
func Init(registry *classloader.Registry) error {
	byClass := make(map[string]*classloader.Class)

	for signature, g := range MethodSignatures {
		className, methodName, descriptor, err := splitSignature(signature)
		if err != nil {
			return err
		}
		class, ok := byClass[className]
		if !ok {
			class = &classloader.Class{
				AccessFlags: types.AccPublic,
				ThisClass:   className,
				SuperClass:  "java/lang/Object",
			}
			byClass[className] = class
		}
		class.Methods = append(class.Methods, &classloader.Method{
			AccessFlags: types.AccPublic | types.AccStatic,
			Name:        methodName,
			Descriptor:  descriptor,
			Native:      g.GFunction,
		})
	}

	for _, class := range byClass {
		if err := registry.Register(class); err != nil {
			return err
		}
	}
	return nil
}

// splitSignature parses "java/lang/Thread.sleep(J)V" into
// ("java/lang/Thread", "sleep", "(J)V"). The split point is the last '.'
// before the parameter list's opening '(', since a binary class name may
// itself contain '/' but never '('.
func splitSignature(signature string) (className, methodName, descriptor string, err error) {
	parenIdx := strings.IndexByte(signature, '(')
	if parenIdx < 0 {
		return "", "", "", excnames.New(excnames.InvalidFormat, "native signature missing '(': "+signature)
	}
	dotIdx := strings.LastIndexByte(signature[:parenIdx], '.')
	if dotIdx < 0 {
		return "", "", "", excnames.New(excnames.InvalidFormat, "native signature missing '.': "+signature)
	}
	return signature[:dotIdx], signature[dotIdx+1 : parenIdx], signature[parenIdx:], nil
}

// justReturn is the native binding for methods whose entire contract is
// "does nothing" (Thread.registerNatives and friends).
func justReturn(locals []value.Value) (*value.Value, error) { return nil, nil }
