// Command goconfini loads a path under a named dialect and dumps its
// dispatched nodes to stdout, one per line -- grounded on the cobra +
// PersistentFlags root-command shape of vippsas-sqlcode's cli/cmd, the
// rest of the pack's CLI idiom, since the teacher itself ships no cmd/.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	confini "github.com/ltick/goconfini"
)

var (
	formatName      string
	caseSensitive   bool
	lowercaseDisp   bool
	delimiterFlag   string
	verbose         bool

	rootCmd = &cobra.Command{
		Use:          "goconfini path",
		Short:        "goconfini",
		Long:         "Load an INI/.conf file and print its dispatched nodes, one per line, under a named dialect.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE:         runDump,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "default", "dialect: default | unix")
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", false, "treat names as case sensitive")
	rootCmd.PersistentFlags().BoolVar(&lowercaseDisp, "lowercase", false, "fold dispatched names to lowercase (requires case-insensitive format)")
	rootCmd.PersistentFlags().StringVarP(&delimiterFlag, "delimiter", "d", "", "override the key/value delimiter byte (single char, or \"space\" for INIAnySpace)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parse progress to stderr")
}

func resolveFormat() (confini.IniFormat, error) {
	var format confini.IniFormat
	switch formatName {
	case "default":
		format = confini.DefaultFormat
	case "unix":
		format = confini.UnixLikeFormat
	default:
		return format, fmt.Errorf("unknown --format %q (want \"default\" or \"unix\")", formatName)
	}
	format.CaseSensitive = caseSensitive
	switch delimiterFlag {
	case "":
	case "space":
		format.DelimiterSymbol = confini.INIAnySpace
	default:
		if len(delimiterFlag) != 1 {
			return format, fmt.Errorf("--delimiter must be a single byte or \"space\", got %q", delimiterFlag)
		}
		format.DelimiterSymbol = delimiterFlag[0]
	}
	return format, nil
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := resolveFormat()
	if err != nil {
		return err
	}
	confini.SetGlobalLowercaseMode(lowercaseDisp)

	log := logrus.WithField("path", path)
	if verbose {
		log.Info("goconfini: loading")
	}

	rc, err := confini.LoadIniPath(path, format, func(stats *confini.IniStatistics, _ any) int {
		if verbose {
			log.WithField("members", stats.Members).WithField("bytes", stats.Bytes).Info("goconfini: parsed statistics")
		}
		return 0
	}, func(d *confini.IniDispatch, _ any) int {
		fmt.Printf("%s:%s=%s@%s\n", d.Type, d.Data, d.Value, d.AppendTo)
		return 0
	}, nil)
	if err != nil {
		return err
	}
	if rc.IsError() {
		return fmt.Errorf("goconfini: %s", rc)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("goconfini: failed")
		os.Exit(1)
	}
}
