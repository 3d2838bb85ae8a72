// Copyright 2021 Mark Siner. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package cmd contains the command-line front ends built on top of this
module's registry, config, engine, and session packages: adcdetect
(device enumeration), adcstream (continuous acquisition to a file),
and adcsim (the same pipeline run against a simulated device).
*/
package cmd
