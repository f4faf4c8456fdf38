package main

import (
	"io"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "BLOOMCTL"
	defaultLogLevel = "INFO"
)

// app carries the state shared by every sub command. Settings resolve from
// flags first and then BLOOMCTL_ prefixed environment variables.
type app struct {
	v   *viper.Viper
	log logger.Logger
	in  io.Reader
	out io.Writer
}

func newApp(in io.Reader, out io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &app{v: v, in: in, out: out}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "bloomctl",
		Short:        "Create, fill and query persisted Bloom filters",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			logger.New(a.v.GetString("log-level"))
			a.log = logger.Sugar.WithServiceName("bloomctl")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.OnExit()
		},
	}
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level (NOOP, DEBUG, INFO, ...)")
	root.SetIn(a.in)
	root.SetOut(a.out)

	root.AddCommand(
		newCreateCmd(a),
		newAddCmd(a),
		newTestCmd(a),
		newStatCmd(a),
	)
	return root
}
