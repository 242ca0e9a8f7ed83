package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/project"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show and edit the material catalog (glass.txt)",
	}
	cmd.AddCommand(
		newCatalogListCmd(a),
		newCatalogAddCmd(a),
		newCatalogImportCmd(a),
		newCatalogWatchCmd(a),
	)
	return cmd
}

func newCatalogListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the catalog sections",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			printCatalog(cmd, a.catalogPath(), catalog)
			return nil
		}),
	}
}

func printCatalog(cmd *cobra.Command, path string, catalog model.GlassCatalog) {
	out := cmd.OutOrStdout()
	renderTitle(out, path)
	rows := make([][]string, 0, len(model.CatalogSections))
	for _, s := range model.CatalogSections {
		rows = append(rows, []string{s.Key(), s.Title(), strings.Join(catalog.Values(s), ", ")})
	}
	renderTable(out, []string{"Key", "Section", "Values"}, rows)
}

func newCatalogAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add SECTION VALUE",
		Short: "Add a value to a catalog section (outer, middle, inner, spacer)",
		Args:  cobra.ExactArgs(2),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			section, err := model.ParseCatalogSection(args[0])
			if err != nil {
				return err
			}
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if !catalog.Add(section, args[1]) {
				printf(cmd.OutOrStdout(), "%q is already in %s\n", strings.TrimSpace(args[1]), section.Title())
				return nil
			}
			if err := project.SaveCatalog(a.catalogPath(), catalog); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added %q to %s\n", strings.TrimSpace(args[1]), section.Title())
			return nil
		}),
	}
}

func newCatalogImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge the values of another catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			merged, added, err := project.ImportCatalog(args[0], catalog)
			if err != nil {
				return err
			}
			if added > 0 {
				if err := project.SaveCatalog(a.catalogPath(), merged); err != nil {
					return err
				}
			}
			printf(cmd.OutOrStdout(), "Imported %d new values from %s\n", added, args[0])
			return nil
		}),
	}
}

func newCatalogWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the catalog every time glass.txt changes, until interrupted",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()

			path := a.catalogPath()
			done, err := project.WatchCatalog(ctx, path, func(catalog model.GlassCatalog, err error) {
				if err != nil {
					a.log.Error("catalog reload failed", "path", path, "error", err)
					return
				}
				a.log.Info("catalog reloaded", "path", path)
				printCatalog(cmd, path, catalog)
			})
			if err != nil {
				return err
			}
			a.log.Info("watching catalog", "path", path)
			<-done
			return nil
		}),
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
