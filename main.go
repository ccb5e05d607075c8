// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/shellbox/shellbox/cmd/shellbox"

func main() {
	cmd.Execute()
}
