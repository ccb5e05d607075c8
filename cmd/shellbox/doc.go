// SPDX-License-Identifier: MPL-2.0

// Package cmd wires the shellbox process: it loads the configuration, sets
// up logging and hands argv to the dispatcher. Invocations under a generic
// name that start with a flag reach the cobra management CLI in this
// package (--list, --install, --docs, ...).
package cmd
