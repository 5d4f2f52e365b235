package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alfredjeanlab/umkmctl/internal/convert"
	"github.com/alfredjeanlab/umkmctl/internal/ui"
)

var convertCmd = &cobra.Command{
	Use:   "convert [<docx> [<pdf>]]",
	Short: "Convert a DOCX document to PDF",
	Long: `Convert renders a DOCX document to PDF with LibreOffice (UMKM_SOFFICE_BIN,
default soffice). Paths that are not given are asked for on stdin; an empty
PDF path writes next to the input.`,
	GroupID: "files",
	Args:    cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docx, pdf := "", ""
		if len(args) > 0 {
			docx = args[0]
		}
		if len(args) > 1 {
			pdf = args[1]
		}

		p := ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
		var err error
		if docx == "" {
			if docx, err = p.Ask("Path to the DOCX file: "); err != nil {
				return err
			}
		}
		if len(args) < 2 {
			if pdf, err = p.Ask("Path for the PDF output (empty: next to the input): "); err != nil {
				return err
			}
		}
		if docx == "" {
			return fmt.Errorf("no DOCX path given")
		}

		c := &convert.Converter{Binary: cfg.SofficeBin}
		if verbose {
			c.Stderr = cmd.ErrOrStderr()
		}
		logger.Debug("converting", zap.String("docx", docx), zap.String("pdf", pdf), zap.String("binary", c.Binary))
		if err := c.Convert(cmd.Context(), docx, pdf); err != nil {
			return err
		}
		if pdf == "" {
			pdf = convert.DefaultPDFPath(docx)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "converted %s to %s\n", docx, pdf)
		return nil
	},
}
