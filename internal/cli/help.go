// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - usage and help output for fsidx.
package cli

import (
	"fmt"
	"strings"
)

// PrintVersion prints the version line.
func PrintVersion() {
	fmt.Printf("fsidx %s (%s, built %s)\n", Version, GitCommit, BuildDate)
}

// PrintUsage prints the short usage block. Higher levels add the locate
// flag table (-hh) and the shell command table (-hhh).
func PrintUsage(styles *Styles, level int) {
	fmt.Println(styles.Header.Render("Usage:"))
	for _, line := range []string{
		"fsidx [-h | -hh | -hhh] [-v | --verbose] [-V | --version]",
		"      [-c <path> | --config-file <path>] <command> [<args>]",
		"fsidx [<options>] update",
		"fsidx [<options>] locate [<flags>] [<tokens>]...",
		"fsidx [<options>] shell",
		"fsidx [<options>] init",
		"fsidx [<options>] help",
	} {
		fmt.Println("  " + line)
	}
	if level >= 2 {
		fmt.Println()
		printLocateHelp(styles)
	}
	if level >= 3 {
		fmt.Println()
		printShellHelp(styles)
	}
}

func printLocateHelp(styles *Styles) {
	fmt.Println(styles.Header.Render("Locate flags:"))
	printFlagTable(styles, [][2]string{
		{"-c | --case-sensitive", "subsequent text matches case-sensitively"},
		{"-i | --case-insensitive", "subsequent text matches case-insensitively (default)"},
		{"-0 | --auto", "token type is autodetected (default)"},
		{"-1 | --plain", "tokens are plain text"},
		{"-2 | --glob", "tokens are glob patterns"},
	})
	fmt.Println()
	fmt.Println(styles.Header.Render("Flags for plain text:"))
	printFlagTable(styles, [][2]string{
		{"-a | --any-order", "text may match in any order (default)"},
		{"-o | --same-order", "text must match in the given order"},
		{"-w | --whole-path", "text is matched against the whole path (default)"},
		{"-l | --last-element", "text is matched against the last element only"},
		{"-s | --smart-spaces", "space matches space, dash, underscore or nothing (default)"},
		{"-S | --no-smart-spaces", "space only matches space"},
		{"-b | --word-boundary", "matches must start and end on a word boundary"},
		{"-B | --no-word-boundary", "no boundary requirement (default)"},
	})
	fmt.Println()
	fmt.Println(styles.Header.Render("Flags for glob patterns:"))
	printFlagTable(styles, [][2]string{
		{"--ls | --literal-separator", "* and ? do not match a slash"},
		{"--nls | --no-literal-separator", "* and ? match any character (default)"},
	})
}

func printShellHelp(styles *Styles) {
	fmt.Println(styles.Header.Render("Shell short-cuts:"))
	printFlagTable(styles, [][2]string{
		{"Ctrl-C", "interrupt the running query"},
		{"Ctrl-D", "exit the shell"},
	})
	fmt.Println()
	fmt.Println(styles.Header.Render("Shell commands:"))
	printFlagTable(styles, [][2]string{
		{"plain text", "print database entries containing the text"},
		{"*.flac", "print database entries matching the glob"},
		{"\\h", "print this help"},
		{"\\q", "quit"},
		{"\\u", "rescan folders and update the databases"},
		{"\\o 12.", "open one entry of the last result list"},
		{"\\o 3.-7.", "open a range of entries"},
		{"\\o *.jpg", "open matching entries"},
		{"\\o 12./../*.flac", "open siblings of entry 12 matching the glob"},
		{"\\r", "show recent queries"},
	})
}

func printFlagTable(styles *Styles, rows [][2]string) {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", width-len(row[0]))
		fmt.Printf("  %s%s  %s\n", styles.Command.Render(row[0]), pad, row[1])
	}
}
