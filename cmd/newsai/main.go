// Package main provides the entry point for the newsai CLI.
//
// newsai summarizes news articles submitted by URL or as pasted text,
// keeps a short history of summaries and exports them to files.
//
// Usage:
//
//	newsai login --email you@example.com
//	newsai summarize --url https://example.com/story --category technology
//	newsai history
//	newsai export
//
// See --help for all available options.
package main

func main() {
	Execute()
}
