// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a node in the CLI tree: either a group that dispatches to
// Subcommands or a leaf with a Run function.
type Command struct {
	// Name is what the user types ("decode").
	Name string

	// Summary is the one-line description in the parent's command list.
	Summary string

	// Description is the long help text. Summary is shown when empty.
	Description string

	// Usage overrides the synthesized usage line, for example
	// "cip25 decode [flags] [file]".
	Usage string

	// Examples follow the flags in help output.
	Examples []Example

	// Flags builds the command's flag set. When nil, the flag set is
	// derived from Params with [FlagsFromParams].
	Flags func() *pflag.FlagSet

	// Params returns a pointer to the command's tagged parameter
	// struct, populated by flag parsing before Run.
	Params func() any

	// Annotations describe the command's side effects. Every command
	// with a Run function sets them.
	Annotations *ToolAnnotations

	// Subcommands are selected by the first positional argument.
	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	// A command with both Run and Subcommands runs when the first
	// argument names no subcommand.
	Run func(args []string) error

	// parent links back up the tree during dispatch, for help text.
	parent *Command
}

// Example is one annotated command line in help output.
type Example struct {
	Description string
	Command     string
}

// Execute dispatches args through the tree rooted at c.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if sub, err := c.route(args); sub != nil || err != nil {
		if err != nil {
			return err
		}
		sub.parent = c
		return sub.Execute(args[1:])
	}

	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		if len(args) == 0 {
			return errors.New("subcommand required")
		}
		return fmt.Errorf("subcommand required (got flag %q)", args[0])
	}

	positional, helped, err := c.parseFlags(args)
	if err != nil || helped {
		return err
	}
	return c.Run(positional)
}

// route returns the subcommand named by args[0]. An unknown name is an
// error only for pure groups; a command with Run treats it as a
// positional argument.
func (c *Command) route(args []string) (*Command, error) {
	if len(c.Subcommands) == 0 || len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return nil, nil
	}
	for _, sub := range c.Subcommands {
		if sub.Name == args[0] {
			return sub, nil
		}
	}
	if c.Run != nil {
		return nil, nil
	}
	if suggestion := suggestCommand(args[0], c.Subcommands); suggestion != "" {
		return nil, c.usageError(fmt.Sprintf("unknown command %q (did you mean %q?)", args[0], suggestion))
	}
	return nil, c.usageError(fmt.Sprintf("unknown command %q", args[0]))
}

// parseFlags parses args against the command's flags and returns the
// positional remainder. helped is true when -h or --help printed help
// instead.
func (c *Command) parseFlags(args []string) (positional []string, helped bool, err error) {
	flagSet := c.flagSet()
	if flagSet == nil {
		return args, false, nil
	}
	// pflag's own error output and usage dump are replaced by usageError.
	flagSet.SetOutput(io.Discard)

	err = flagSet.Parse(args)
	switch {
	case err == nil:
		return flagSet.Args(), false, nil
	case errors.Is(err, pflag.ErrHelp):
		c.PrintHelp(os.Stderr)
		return nil, true, nil
	}

	message := err.Error()
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		// Parse has already assigned some values, so suggest from a
		// fresh flag set.
		if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
			message += fmt.Sprintf(" (did you mean %s?)", suggestion)
		}
	}
	return nil, false, c.usageError(message)
}

func (c *Command) usageError(message string) error {
	return fmt.Errorf("%s\n\nRun '%s --help' for usage.", message, c.fullName())
}

// flagSet returns a fresh flag set for the command, or nil when it
// takes no flags.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Flags != nil {
		return c.Flags()
	}
	if c.Params != nil {
		return FlagsFromParams(c.Name, c.Params())
	}
	return nil
}

// PrintHelp writes the description, usage, commands, flags and
// examples of c to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	description := c.Description
	if description == "" {
		description = c.Summary
	}
	if description != "" {
		fmt.Fprintf(w, "%s\n\n", description)
	}

	usage := c.Usage
	switch {
	case usage != "":
	case len(c.Subcommands) > 0:
		usage = name + " <command> [flags]"
	default:
		usage = name + " [flags]"
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprint(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if flagSet := c.flagSet(); flagSet != nil && flagSet.HasFlags() {
		fmt.Fprintf(w, "\nFlags:\n%s", flagSet.FlagUsages())
	}

	if len(c.Examples) > 0 {
		fmt.Fprint(w, "\nExamples:\n")
		for index, example := range c.Examples {
			if index > 0 {
				fmt.Fprintln(w)
			}
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// fullName returns the command path from the root, e.g. "cip25 decode".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
