package main

import (
	"errors"
	"fmt"

	"github.com/example/vntok/internal/doctor"
	"github.com/example/vntok/internal/server"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run lexicon, tokenizer and server checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "unicode form: %s\n", cfg.Tokenizer.Normalize)

			dcfg := doctor.Config{
				LexiconPath: cfg.Lexicon.Path,
				Build: func() (doctor.Tokenizer, error) {
					return buildTokenizer(cfg)
				},
			}
			if addr != "" {
				dcfg.ProbeAddr = addr
				dcfg.Probe = func() error { return server.ProbeHTTP(addr) }
			}

			result := doctor.Run(dcfg, out)
			if cfg.Server.MaxTextBytes <= 0 {
				result.AddFailure(fmt.Sprintf("server.max_text_bytes must be positive, got %d", cfg.Server.MaxTextBytes))
			}

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Also probe a running server at this address")

	return cmd
}
