package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/combine/charset"
)

func newCharsetCmd() *cobra.Command {
	var latin1 bool

	cmd := &cobra.Command{
		Use:   "charset [name]",
		Short: "Show a named character class, or list all class names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := charset.Unicode
			if latin1 {
				table = charset.Latin1
			}

			if len(args) == 0 {
				for _, name := range table.Names() {
					fmt.Println(name)
				}
				return nil
			}

			set, ok := table.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown class %q in %s table", args[0], table)
			}
			fmt.Printf("%s: %d codepoints in %d ranges\n", args[0], set.Size(), len(set.Ranges()))
			for _, r := range set.Ranges() {
				fmt.Println("  " + r.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&latin1, "latin1", false, "use the Latin-1 registry")

	return cmd
}
