// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim builds and runs netlists from the command line.
//
//	logicsim run NETLIST [--lib FILE]... [--set NAME=0|1]... [--toggle ID]...
//	logicsim chips [--lib FILE]...
//
package main

import (
	"os"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/chiplib"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalOptions struct {
	libs  []string
	debug bool
}

func (o *globalOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringArrayVar(&o.libs, "lib", nil, "chip library file (YAML or JSON) to load on top of the standard library, may be repeated")
	fs.BoolVar(&o.debug, "debug", false, "use debug log level")
}

func (o *globalOptions) logger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	if o.debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// library returns the standard library extended with the chips of every
// --lib file, in order.
func (o *globalOptions) library() (*logicsim.Library, error) {
	lib := chiplib.Default()
	for _, name := range o.libs {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrap(err, "open chip library")
		}
		defs, err := logicsim.LoadLibrary(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		if lib, err = lib.With(defs...); err != nil {
			return nil, errors.Wrap(err, name)
		}
	}
	return lib, nil
}

func newRootCmd() *cobra.Command {
	o := &globalOptions{}
	cmd := &cobra.Command{
		Use:          "logicsim",
		Short:        "Digital logic simulator",
		SilenceUsage: true,
	}
	o.addFlags(cmd.PersistentFlags())
	cmd.AddCommand(newRunCmd(o), newChipsCmd(o))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
