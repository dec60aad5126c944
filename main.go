// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/halmatrix/fcmgen/cmd/fcmgen"

func main() {
	cmd.Execute()
}
