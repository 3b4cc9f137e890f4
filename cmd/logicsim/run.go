// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type runOptions struct {
	*globalOptions
	set       []string
	toggle    []string
	maxRounds int
	deep      bool
	metrics   bool
	watch     bool
}

func (o *runOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringArrayVar(&o.set, "set", nil, "set boundary input `NAME=0|1` before assembly, may be repeated")
	fs.StringArrayVar(&o.toggle, "toggle", nil, "toggle input `ID` after assembly, may be repeated")
	fs.IntVar(&o.maxRounds, "max-rounds", logicsim.DefaultMaxRounds, "maximum evaluation rounds per stabilization")
	fs.BoolVar(&o.deep, "deep", false, "also print the internals of composite chips")
	fs.BoolVar(&o.metrics, "metrics", false, "dump simulation metrics after the run")
	fs.BoolVar(&o.watch, "watch", false, "rebuild and print the circuit whenever the netlist or a library file changes")
}

func newRunCmd(g *globalOptions) *cobra.Command {
	o := &runOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "run NETLIST",
		Short: "Assemble a netlist, run it until it settles and print its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := o.logger()
			out := cmd.OutOrStdout()
			var (
				reg *prometheus.Registry
				m   *logicsim.Metrics
			)
			if o.metrics {
				reg = prometheus.NewRegistry()
				m = logicsim.NewMetrics(reg)
			}

			if !o.watch {
				if err := o.run(out, log, m, args[0]); err != nil {
					return err
				}
				return dumpMetrics(out, reg)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := o.run(out, log, m, args[0]); err != nil {
				log.WithError(err).Error("run failed")
			}
			err := watch(ctx, log, append([]string{args[0]}, o.libs...), func() {
				fmt.Fprintln(out)
				if err := o.run(out, log, m, args[0]); err != nil {
					log.WithError(err).Error("run failed")
				}
			})
			if err != nil {
				return err
			}
			return dumpMetrics(out, reg)
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

// parseAssign parses a NAME=0|1 input assignment.
func parseAssign(s string) (string, bool, error) {
	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return "", false, errors.Errorf("invalid input assignment %q, want NAME=0|1", s)
	}
	v, err := strconv.ParseBool(s[i+1:])
	if err != nil {
		return "", false, errors.Errorf("invalid value for input %s: %q", s[:i], s[i+1:])
	}
	return s[:i], v, nil
}

// run assembles the netlist in path, applies the input changes and prints the
// resulting circuit state to w.
func (o *runOptions) run(w io.Writer, log logrus.FieldLogger, m *logicsim.Metrics, path string) error {
	lib, err := o.library()
	if err != nil {
		return err
	}
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read netlist")
	}
	in := make(map[string]bool, len(o.set))
	for _, s := range o.set {
		n, v, err := parseAssign(s)
		if err != nil {
			return err
		}
		in[n] = v
	}

	c := logicsim.New(lib, logicsim.Options{MaxRounds: o.maxRounds, Logger: log, Metrics: m})
	c.SetInputs(in)
	c.Assemble(string(src))
	for _, id := range o.toggle {
		if !c.ToggleInput(id) {
			log.WithField("id", id).Warn("no such input")
		}
	}
	return printCircuit(w, c, o.deep)
}

func bit(v bool) int {
	if v {
		return 1
	}
	return 0
}

func formatPins(pins map[string]bool) string {
	names := make([]string, 0, len(pins))
	for n := range pins {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", n, bit(pins[n]))
	}
	return b.String()
}

func printCircuit(out io.Writer, c *logicsim.Circuit, deep bool) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tVALUE\tINPUTS\tOUTPUTS")
	err := c.Root().Walk(func(path string, comp *logicsim.Component) error {
		if !deep && strings.Contains(path, ".") {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", path, comp.Type, bit(comp.Value), formatPins(comp.Inputs), formatPins(comp.Outputs))
		return err
	})
	if err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}

	for _, wn := range c.Warnings() {
		fmt.Fprintf(out, "warning: %s: %s\n", wn.Kind, wn)
	}
	if c.Settled() {
		fmt.Fprintf(out, "settled after %d rounds, %d components\n", c.Rounds(), c.Size())
	} else {
		fmt.Fprintf(out, "did not settle after %d rounds, %d components\n", c.Rounds(), c.Size())
	}
	return nil
}

func dumpMetrics(w io.Writer, reg *prometheus.Registry) error {
	if reg == nil {
		return nil
	}
	mfs, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrap(err, "encode metrics")
		}
	}
	return nil
}
