// SPDX-License-Identifier: MPL-2.0

package main

import cmd "lockfetch-cli/cmd/lockfetch"

func main() {
	cmd.Execute()
}
