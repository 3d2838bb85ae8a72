// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package api provides the low-level vocabulary of the AIOUSB-family
analog-to-digital converter protocol: the USB control/bulk request
identifiers, the device transport abstraction, the gain-code-to-voltage
range table, and the error taxonomy.

Higher-level packages (stream, engine, registry, session) build on top of
these types. None of the types here perform I/O on their own; Device is
an interface implemented by a concrete transport (see the transport
package) or by a test fake.
*/
package api
