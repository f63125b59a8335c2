package main

import (
	"fmt"

	"github.com/govalues/fixed"
	"github.com/govalues/fixed/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newDetCmd() *cobra.Command {
	var (
		file string
		prec int
	)
	cmd := &cobra.Command{
		Use:   "det",
		Short: "Compute the determinant of a matrix file",
		Long: `Reads a square matrix from a YAML or TOML file and prints its determinant.
Entries are strings so that no digits are lost to floating point:

  precision: 10
  rows:
    - ["2", "1"]
    - ["1", "3"]

The precision in the file wins over --precision.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("precision") {
				prec = a.cfg.Precision
			}
			m, err := config.LoadMatrix(file, prec)
			if err != nil {
				return err
			}
			a.logger.Debug("computing determinant", zap.String("file", file), zap.Int("order", len(m)))
			d, err := fixed.Det(m)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Matrix file (required)")
	cmd.Flags().IntVarP(&prec, "precision", "p", fixed.DefaultPrec, "Fractional digits of the entries")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
