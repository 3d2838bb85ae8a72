// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package registry maps a device index to its open transport and cached
configuration. It is the concrete stand-in for the external device
table spec.md mentions only by interface: Open acquires a transport
connection and returns a non-owning handle to it; Release tears it
down. The engine package holds a borrowed *registry.Entry for as long
as it is running; it never owns the underlying transport.
*/
package registry
