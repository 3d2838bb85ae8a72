// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package aioadc is the top-level package of the aioadc module. See the
api package for the USB transport and protocol primitives, the engine
package for the continuous-acquisition run loop, or the session
package for a convenient, functional-options API layered on top of
both.
*/
package aioadc
