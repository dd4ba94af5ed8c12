// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

// The vocabulary below is recognition-only. The tokenizer itself treats all
// of these as ordinary text; they are exposed for the engines and tools that
// consume the tree.

// Directives from Appendix A of the GNU Make manual.
var directives = map[string]bool{
	"define":   true,
	"endef":    true,
	"undefine": true,
	"ifdef":    true,
	"ifndef":   true,
	"ifeq":     true,
	"ifneq":    true,
	"else":     true,
	"endif":    true,
	"include":  true,
	"-include": true,
	"sinclude": true,
	"override": true,
	"export":   true,
	"unexport": true,
	"private":  true,
	"vpath":    true,
}

// Special built-in target names (GNU Make manual 4.8).
var specialTargets = map[string]bool{
	".PHONY":                true,
	".SUFFIXES":             true,
	".DEFAULT":              true,
	".PRECIOUS":             true,
	".INTERMEDIATE":         true,
	".SECONDARY":            true,
	".SECONDEXPANSION":      true,
	".DELETE_ON_ERROR":      true,
	".IGNORE":               true,
	".LOW_RESOLUTION_TIME":  true,
	".SILENT":               true,
	".EXPORT_ALL_VARIABLES": true,
	".NOTPARALLEL":          true,
	".ONESHELL":             true,
	".POSIX":                true,
}

// Built-in text and file function names, as they appear before the first
// argument inside a $( ) reference.
var functionNames = map[string]bool{
	"subst":      true,
	"patsubst":   true,
	"strip":      true,
	"findstring": true,
	"filter":     true,
	"filter-out": true,
	"sort":       true,
	"word":       true,
	"words":      true,
	"wordlist":   true,
	"firstword":  true,
	"lastword":   true,
	"dir":        true,
	"notdir":     true,
	"suffix":     true,
	"basename":   true,
	"addsuffix":  true,
	"addprefix":  true,
	"join":       true,
	"wildcard":   true,
	"realpath":   true,
	"abspath":    true,
	"error":      true,
	"warning":    true,
	"info":       true,
	"shell":      true,
	"origin":     true,
	"flavor":     true,
	"foreach":    true,
	"if":         true,
	"or":         true,
	"and":        true,
	"call":       true,
	"eval":       true,
	"file":       true,
	"value":      true,
}

// Automatic variables, without the leading '$'.
var automaticVariables = map[string]bool{
	"@": true, "%": true, "<": true, "?": true, "^": true, "+": true, "*": true,
	"@D": true, "@F": true,
	"*D": true, "*F": true,
	"%D": true, "%F": true,
	"<D": true, "<F": true,
	"^D": true, "^F": true,
	"+D": true, "+F": true,
	"?D": true, "?F": true,
}

// IsDirective reports whether s is a makefile directive keyword such as
// "include" or "ifdef".
func IsDirective(s string) bool { return directives[s] }

// IsSpecialTarget reports whether s is a special built-in target name such
// as ".PHONY".
func IsSpecialTarget(s string) bool { return specialTargets[s] }

// IsFunctionName reports whether s names a built-in function such as
// "patsubst" or "shell".
func IsFunctionName(s string) bool { return functionNames[s] }

// IsAutomaticVariable reports whether s (without its leading '$') is an
// automatic variable such as "@" or "<".
func IsAutomaticVariable(s string) bool { return automaticVariables[s] }
