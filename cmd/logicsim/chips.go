// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newChipsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chips",
		Short: "List the chips available to netlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := g.library()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tKIND\tINPUTS\tOUTPUTS")
			for _, n := range lib.Names() {
				d, _ := lib.Lookup(n)
				kind := "primitive"
				if d.IsComposite() {
					kind = fmt.Sprintf("composite(%d)", len(d.Components))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n, kind, strings.Join(d.Inputs, ","), strings.Join(d.Outputs, ","))
			}
			return w.Flush()
		},
	}
}
