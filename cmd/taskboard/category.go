package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskboard/internal/service"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the shared category list",
	}
	cmd.AddCommand(categoryAddCmd())
	cmd.AddCommand(categoryListCmd())
	cmd.AddCommand(categoryDeleteCmd())
	cmd.AddCommand(categoryImportCmd())
	return cmd
}

func categoryAddCmd() *cobra.Command {
	var input service.CategoryInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			category, err := app.categories.Add(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added category %d %q\n", category.ID, category.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "unique category name")
	cmd.Flags().StringVarP(&input.DisplayName, "display-name", "d", "", "label shown to users (defaults to name)")
	cmd.Flags().StringVarP(&input.Color, "color", "c", "", "hex color, e.g. #007bff")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			categories, err := app.categories.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDISPLAY NAME\tCOLOR")
			for _, c := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.DisplayName, c.Color)
			}
			return w.Flush()
		},
	}
}

func categoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a category; its tasks keep existing without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.categories.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete category %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted category %q\n", args[0])
			return nil
		},
	}
}

func categoryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Create or update categories from a YAML file",
		Long: `Create or update categories from a YAML file.

Example file:
  categories:
    - name: work
      display_name: Work
      color: "#ff8800"
    - name: home`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.categories.ImportYAML(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d categories\n", n)
			return nil
		},
	}
}
