// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

// Package fileutil decides which files look like makefiles.
package fileutil

import (
	"os"
	"regexp"
)

var (
	nameRe = regexp.MustCompile(`^(GNUm|[Mm])akefile$`)
	extRe  = regexp.MustCompile(`\.(mk|make)$`)
)

// CouldBeMakefile reports whether the file looks like a makefile, either by
// one of the conventional names or by extension.
func CouldBeMakefile(info os.FileInfo) bool {
	name := info.Name()
	switch {
	case info.IsDir(), name[0] == '.', !info.Mode().IsRegular():
		return false
	case nameRe.MatchString(name), extRe.MatchString(name):
		return true
	}
	return false
}
