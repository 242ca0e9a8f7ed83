package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/SibGlass/internal/formula"
	"github.com/piwi3910/SibGlass/internal/importer"
	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/order"
	"github.com/piwi3910/SibGlass/internal/sheet"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sibglass",
		Short: "Convert AluPro glass lines into a Sibglass order request",
		Long: `sibglass reads the insulated glass lines of an AluPro export, composes
descriptive formulas from the material catalog (glass.txt) and writes
them into the Sibglass request template.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Settings file (default: ~/.sibglass/config.json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose logging")

	root.AddCommand(
		newValidateCmd(a),
		newParseCmd(a),
		newFormulasCmd(a),
		newGenerateCmd(a),
		newCatalogCmd(a),
		newPanesCmd(a),
	)
	return root
}

// runE wraps a command body with settings, logging and error reporting.
func (a *app) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a.setup(cmd.ErrOrStderr())
		defer a.close()
		err := fn(cmd, args)
		if err != nil {
			a.log.Error("command failed", "command", cmd.CommandPath(), "error", err)
		}
		return err
	}
}

func newValidateCmd(a *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a workbook is an AluPro export or a Sibglass request template",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&role, "role", string(sheet.RoleSource), "Workbook role: source or destination")
	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		r, err := sheet.ParseRole(role)
		if err != nil {
			return err
		}
		path := args[0]
		if err := sheet.Validate(path, r); err != nil {
			return err
		}
		if r == sheet.RoleDestination {
			if sheet.Extension(path) == ".xls" {
				return sheet.ErrLegacyDestination
			}
			a.remember("", path)
		} else {
			a.remember(path, "")
		}
		printf(cmd.OutOrStdout(), "%s: valid %s workbook\n", path, r)
		return nil
	})
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the glass lines recognised in an AluPro export",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the items as JSON")
	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		result, err := importer.ImportAluPro(args[0])
		if err != nil {
			return err
		}
		logImport(a, args[0], result)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Items)
		}

		rows := make([][]string, len(result.Items))
		for i, it := range result.Items {
			rows[i] = []string{
				fmt.Sprintf("%d", i+1), it.Formula,
				fmt.Sprintf("%d", it.Width), fmt.Sprintf("%d", it.Height), fmt.Sprintf("%d", it.Count),
			}
		}
		renderTitle(out, fmt.Sprintf("%d items (strategy: %s, skipped: %d)", len(result.Items), result.Strategy, result.Skipped))
		renderTable(out, []string{"#", "Formula", "Width", "Height", "Count"}, rows)
		return nil
	})
	return cmd
}

func logImport(a *app, path string, result importer.ImportResult) {
	a.log.Info("AluPro export parsed",
		"path", path, "strategy", result.Strategy, "items", len(result.Items), "skipped", result.Skipped)
	for _, w := range result.Warnings {
		a.log.Warn(w, "path", path)
	}
}

// rowOptions are the manual resolution sources shared by formulas and generate.
type rowOptions struct {
	rowsFile string
	sets     []string
}

func (o *rowOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.rowsFile, "rows", "", "JSON file with edited formula rows (see 'formulas --out')")
	cmd.Flags().StringArrayVar(&o.sets, "set", nil, `Manual resolution "SOURCE=FORMULA" (repeatable)`)
}

// formulaRows builds the resolution rows for items: automatic resolution with
// sel, then edits kept in the rows file, then --set overrides.
func (a *app) formulaRows(items []model.FormulaItem, sel model.Selection, opts rowOptions) ([]model.FormulaRowState, error) {
	resolve := formula.NewBuilder(sel).Resolve
	var rows []model.FormulaRowState

	if opts.rowsFile == "" {
		rows = order.NewRowStates(items, resolve)
	} else {
		data, err := os.ReadFile(opts.rowsFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read rows file: %w", err)
		}
		var previous []model.FormulaRowState
		if err := json.Unmarshal(data, &previous); err != nil {
			return nil, fmt.Errorf("cannot parse rows file %s: %w", opts.rowsFile, err)
		}
		// Edited rows win; the rest follow the current selection.
		rows = order.Rebuild(order.MergeEdited(order.NewRowStates(items, nil), previous), resolve)
	}

	if len(opts.sets) > 0 {
		overrides := make(map[string]string, len(opts.sets))
		for _, s := range opts.sets {
			source, value, ok := strings.Cut(s, "=")
			if !ok {
				return nil, fmt.Errorf("invalid --set %q, expected SOURCE=FORMULA", s)
			}
			overrides[strings.TrimSpace(source)] = value
		}
		var unknown []string
		rows, unknown = order.ApplyOverrides(rows, overrides)
		for _, u := range unknown {
			a.log.Warn("formula not present in the AluPro export", "formula", u)
		}
	}
	return rows, nil
}

func newFormulasCmd(a *app) *cobra.Command {
	var (
		flags   selectionFlags
		rowOpts rowOptions
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "formulas FILE",
		Short: "List the distinct formulas of an AluPro export with their resolution",
		Args:  cobra.ExactArgs(1),
	}
	flags.bind(cmd)
	rowOpts.bind(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the formula rows as JSON for editing")
	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		result, err := importer.ImportAluPro(args[0])
		if err != nil {
			return err
		}
		logImport(a, args[0], result)

		catalog, err := a.loadCatalog()
		if err != nil {
			return err
		}
		sel := flags.resolve(cmd, catalog, nil)
		rows, err := a.formulaRows(result.Items, sel, rowOpts)
		if err != nil {
			return err
		}

		if outPath != "" {
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write rows file: %w", err)
			}
		}

		table := make([][]string, len(rows))
		for i, r := range rows {
			resolved := r.ResolvedFormula
			if resolved == "" {
				resolved = "(manual entry required)"
			}
			edited := ""
			if r.Modified {
				edited = "edited"
			}
			table[i] = []string{r.SourceFormula, resolved, edited}
		}
		renderTable(cmd.OutOrStdout(), []string{"Source", "Resolved", ""}, table)
		return nil
	})
	return cmd
}

func newPanesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panes FILE",
		Short: "List the pane outlines of a DXF layout",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		panes, err := importer.ReadPanes(args[0])
		if err != nil {
			return err
		}
		a.log.Debug("DXF layout read", "path", args[0], "panes", len(panes))

		rows := make([][]string, len(panes))
		for i, p := range panes {
			rows[i] = []string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%.0f", p.Width), fmt.Sprintf("%.0f", p.Height),
				fmt.Sprintf("%.4f", p.Width*p.Height/1_000_000),
			}
		}
		renderTable(cmd.OutOrStdout(), []string{"#", "Width", "Height", "Area m²"}, rows)
		return nil
	})
	return cmd
}
