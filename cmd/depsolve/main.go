// Command depsolve is a thin driver over the dependency solver core: it
// loads a candidate table from disk and prints either the selected
// packages or a structured failure report. The resolver, downloader,
// and installer that would produce and consume a real candidate table
// live outside this module.
package main

import "depsolver/internal/cli"

func main() {
	cli.Execute()
}
