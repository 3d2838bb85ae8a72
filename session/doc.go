// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package session implements a high-level API on top of, and as an
alternative to, the lower-level registry/config/engine packages. It
wraps the common device-selection, configuration, and run-loop tasks
in a functional-options Session, composable the way the registry,
config, and engine packages alone are not.
*/
package session
