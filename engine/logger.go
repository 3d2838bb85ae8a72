// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

// Logger is the logging interface accepted throughout this module. It
// is satisfied by the standard library's *log.Logger and by
// *charmlog.Logger from github.com/charmbracelet/log, so a caller can
// inject either without this package depending on a concrete logging
// implementation.
type Logger interface {
	Printf(format string, v ...interface{})
}

// nopLogger discards everything. It is the default when no Logger is
// injected, so call sites never need a nil check.
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
