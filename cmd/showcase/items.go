package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/service"
)

var (
	listPlacement string
	addPlacement  string
	link          string
	title         string
	findLimit     int
	allItems      bool
	moveTo        int
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the promotions shown in the carousels",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List promotions",
	Args:  cobra.NoArgs,
	RunE:  runItemsList,
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <image>",
	Short: "Add a promotion at the end of its placement",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsAdd,
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove <id|title>",
	Short: "Remove a promotion by id or exact title",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsRemove,
}

var itemsFindCmd = &cobra.Command{
	Use:   "find <title>",
	Short: "Fuzzy-find promotions by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runItemsFind,
}

var itemsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import promotions from a YAML item file",
	Long: `Imports every entry of a YAML item file:

  items:
    - image: assets/promo/spring.png
      title: Spring sale
      link: https://example.com/spring
      placement: featured

Entries already imported are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemsImport,
}

var itemsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all promotions as a YAML item file to stdout",
	Args:  cobra.NoArgs,
	RunE:  runItemsExport,
}

var itemsEnableCmd = &cobra.Command{
	Use:   "enable <id|title>",
	Short: "Show a hidden promotion again",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setActive(cmd, args[0], true) },
}

var itemsDisableCmd = &cobra.Command{
	Use:   "disable <id|title>",
	Short: "Hide a promotion without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setActive(cmd, args[0], false) },
}

var itemsMoveCmd = &cobra.Command{
	Use:   "move <id|title>",
	Short: "Move a promotion to another position in its placement",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsMove,
}

var itemsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every promotion (defaults are seeded again on next start)",
	Args:  cobra.NoArgs,
	RunE:  runItemsReset,
}

func init() {
	itemsListCmd.Flags().StringVar(&listPlacement, "placement", "", "only this placement (featured, vendors)")
	itemsListCmd.Flags().BoolVar(&allItems, "all", false, "include inactive promotions")
	itemsAddCmd.Flags().StringVar(&addPlacement, "placement", repository.PlacementFeatured, "placement")
	itemsAddCmd.Flags().StringVar(&link, "link", "", "click-through URL")
	itemsAddCmd.Flags().StringVar(&title, "title", "", "title shown on the card")
	itemsFindCmd.Flags().IntVar(&findLimit, "limit", 5, "maximum results")
	itemsMoveCmd.Flags().IntVar(&moveTo, "to", 0, "new position, 0 is first")

	itemsCmd.AddCommand(itemsListCmd, itemsAddCmd, itemsRemoveCmd, itemsFindCmd,
		itemsEnableCmd, itemsDisableCmd, itemsMoveCmd,
		itemsImportCmd, itemsExportCmd, itemsResetCmd)
}

func runItemsList(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.promotions.Promotions.List(cmd.Context(), repository.PromotionFilters{Placement: listPlacement, ActiveOnly: !allItems})
	if err != nil {
		return fmt.Errorf("list promotions: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No promotions.")
		return nil
	}
	for _, p := range list {
		printPromotion(out, p)
	}
	fmt.Fprintf(out, "Total: %d\n", len(list))
	return nil
}

func runItemsAdd(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.promotions.Add(cmd.Context(), service.AddInput{Placement: addPlacement, Image: args[0], Link: link, Title: title})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p.ID)
	return nil
}

func runItemsRemove(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.promotions.Remove(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.ID)
	return nil
}

func setActive(cmd *cobra.Command, ref string, active bool) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.promotions.SetActive(cmd.Context(), ref, active)
	if err != nil {
		return err
	}
	verb := "Disabled"
	if active {
		verb = "Enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, p.ID)
	return nil
}

func runItemsMove(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.promotions.Move(cmd.Context(), args[0], moveTo)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %d\n", p.ID, p.SortOrder)
	return nil
}

func runItemsFind(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	matches, err := a.promotions.Find(cmd.Context(), strings.Join(args, " "), findLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches.")
		return nil
	}
	for _, m := range matches {
		printPromotion(out, m.Promotion)
	}
	return nil
}

func runItemsImport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	res, err := a.promotions.Import(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", res.Imported, res.Skipped)
	return nil
}

func runItemsExport(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return a.promotions.Export(cmd.Context(), cmd.OutOrStdout())
}

func runItemsReset(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	maint := &service.MaintenanceService{DB: a.db}
	if err := maint.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All promotions removed.")
	return nil
}

func printPromotion(w io.Writer, p repository.Promotion) {
	name := p.ImageRef
	if p.Title != nil {
		name = *p.Title
	}
	state := ""
	if !p.Active {
		state = " (inactive)"
	}
	linkText := "-"
	if p.Link != nil {
		linkText = *p.Link
	}
	fmt.Fprintf(w, "%s  %-8s %2d  %-28s %s%s\n", p.ID, p.Placement, p.SortOrder, ansi.Truncate(name, 28, "…"), linkText, state)
}
