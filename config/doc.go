// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package config decodes and validates the JSON stream configuration
block: device selection, per-channel gain/enable settings, trigger
mode, oversample factor, and output kind. Enumerated fields implement
json.Unmarshaler, validating the decoded string against a lookup
map rather than accepting any value that happens to parse.
*/
package config
