// SPDX-License-Identifier: MPL-2.0

// Package shell implements sh and ash on top of the mvdan.cc/sh
// interpreter.
//
// Commands whose name is a compiled-in applet run in-process through the
// applet.Host stored in the context by the dispatcher, so a pipeline such
// as "echo x | tr x y" never leaves the binary. Applets with the REQUIRE
// privilege policy, and everything else, run as external programs.
package shell
