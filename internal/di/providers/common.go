package providers

import "flag"

// CommandLine carries the process arguments into the container so the
// config provider can parse global flags. Subcommand arguments remain in
// FlagSet.Args() afterwards.
type CommandLine struct {
	FlagSet *flag.FlagSet
	Args    []string
}
