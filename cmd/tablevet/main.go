/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Command tablevet validates CSV data files against named rule suites and
// renders the results as reports and a static data docs site.
package main

import "github.com/tablevet/tablevet/pkg/cli"

func main() {
	cli.Execute()
}
