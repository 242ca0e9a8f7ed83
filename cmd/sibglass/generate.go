package main

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SibGlass/internal/export"
	"github.com/piwi3910/SibGlass/internal/importer"
	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/order"
	"github.com/piwi3910/SibGlass/internal/project"
	"github.com/piwi3910/SibGlass/internal/sheet"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	source      string
	destination string
	customer    string
	address     string
	restore     bool

	pdfPath    string
	labelsPath string
	dxfPath    string
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		opts    generateOptions
		flags   selectionFlags
		rowOpts rowOptions
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill the Sibglass request template from an AluPro export",
		Long: `generate reads the AluPro export, resolves every formula and writes the
order rows into the Sibglass request template in place. Source and
destination default to the last files used.`,
		Args: cobra.NoArgs,
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.source, "source", "s", "", "AluPro export (.xlsx or .xls)")
	fs.StringVarP(&opts.destination, "dest", "d", "", "Sibglass request template (.xlsx)")
	fs.StringVar(&opts.customer, "customer", "", "Customer name")
	fs.StringVar(&opts.address, "address", "", "Delivery address")
	fs.BoolVar(&opts.restore, "restore", false, "Restore the form saved by an interrupted run")
	fs.StringVar(&opts.pdfPath, "pdf", "", "Also write an order summary PDF")
	fs.StringVar(&opts.labelsPath, "labels", "", "Also write a PDF of QR labels, one per glass unit")
	fs.StringVar(&opts.dxfPath, "dxf", "", "Also write a DXF layout of the panes")
	flags.bind(cmd)
	rowOpts.bind(cmd)

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		return a.generate(cmd, opts, flags, rowOpts)
	})
	return cmd
}

func (a *app) generate(cmd *cobra.Command, opts generateOptions, flags selectionFlags, rowOpts rowOptions) error {
	var restored *model.Selection
	if opts.restore {
		state, ok, err := project.LoadAutosave(a.autosavePath())
		if err != nil {
			return err
		}
		if ok {
			a.log.Info("restoring autosaved form", "saved_at", state.CreatedAt)
			fill := func(dst *string, flag, v string) {
				if !cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			fill(&opts.source, "source", state.SourcePath)
			fill(&opts.destination, "dest", state.DestinationPath)
			fill(&opts.customer, "customer", state.Customer)
			fill(&opts.address, "address", state.Address)
			restored = &state.Selection
		} else {
			a.log.Info("no autosaved form to restore")
		}
	}
	a.config.ApplyDefaults(&opts.source, &opts.destination)
	if opts.source == "" || opts.destination == "" {
		return errors.New("both --source and --dest are required on the first run")
	}

	if sheet.Extension(opts.destination) == ".xls" {
		return sheet.ErrLegacyDestination
	}
	if err := sheet.Validate(opts.destination, sheet.RoleDestination); err != nil {
		return err
	}
	result, err := importer.ImportAluPro(opts.source)
	if err != nil {
		return err
	}
	logImport(a, opts.source, result)
	a.remember(opts.source, opts.destination)

	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}
	sel := flags.resolve(cmd, catalog, restored)

	snapshot := project.State{
		SourcePath:      opts.source,
		DestinationPath: opts.destination,
		Customer:        opts.customer,
		Address:         opts.address,
		Selection:       sel,
	}
	if err := project.SaveAutosave(a.autosavePath(), snapshot); err != nil {
		a.log.Warn("cannot write autosave", "error", err)
	}

	rows, err := a.formulaRows(result.Items, sel, rowOpts)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if r.ResolvedFormula == "" {
			a.log.Warn("formula left unresolved, its lines are not ordered", "formula", r.SourceFormula)
		}
	}

	items := order.Aggregate(result.Items, order.ResolutionMap(rows))
	if len(items) == 0 {
		a.log.Warn("no resolved order lines, the request table is cleared")
	}
	o := model.NewOrder(opts.customer, opts.address, items)

	if err := export.GenerateRequest(opts.destination, o); err != nil {
		return err
	}
	a.log.Info("request written", "path", opts.destination, "order", o.ID, "rows", len(o.Items))

	if err := a.writeExtras(o, opts); err != nil {
		return err
	}

	if err := project.ClearAutosave(a.autosavePath()); err != nil {
		a.log.Warn("cannot clear autosave", "error", err)
	}

	printf(cmd.OutOrStdout(), "Order %s: %d rows, %d units, %.4f m² written to %s\n",
		o.ID, len(o.Items), o.TotalCount(), o.TotalArea(), opts.destination)
	return nil
}

// writeExtras writes the optional PDF, label and DXF exports.
func (a *app) writeExtras(o model.Order, opts generateOptions) error {
	pdfOpts := export.PDFOptions{FontPath: a.pdfFontPath()}
	if pdfOpts.FontPath == "" && (opts.pdfPath != "" || opts.labelsPath != "") {
		a.log.Warn("no font_path configured, Cyrillic text in PDF exports is replaced by the core font",
			"settings", a.configPath)
	}
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, o, pdfOpts); err != nil {
			return fmt.Errorf("order PDF: %w", err)
		}
		a.log.Info("order summary written", "path", opts.pdfPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, o, pdfOpts); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		a.log.Info("labels written", "path", opts.labelsPath, "labels", o.TotalCount())
	}
	if opts.dxfPath != "" {
		if err := export.ExportDXF(opts.dxfPath, o.Items); err != nil {
			return fmt.Errorf("DXF layout: %w", err)
		}
		a.log.Info("DXF layout written", "path", opts.dxfPath)
	}
	return nil
}
