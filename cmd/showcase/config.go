package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/showcase/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "database.path        %s\n", cfg.Database.Path)
		fmt.Fprintf(out, "database.migrations  %s\n", cfg.Database.Migrations)
		fmt.Fprintf(out, "source.kind          %s\n", cfg.Source.Kind)
		fmt.Fprintf(out, "source.file          %s\n", cfg.Source.File)
		fmt.Fprintf(out, "source.watch         %t\n", cfg.Source.Watch)
		fmt.Fprintf(out, "carousel.interval    %s\n", cfg.Carousel.Interval())
		fmt.Fprintf(out, "carousel.transition  %s\n", cfg.Carousel.Transition())
		fmt.Fprintf(out, "carousel.breakpoint  %d\n", cfg.Carousel.Breakpoint)
		fmt.Fprintf(out, "carousel.fractions   %.2f wide, %.2f narrow\n", cfg.Carousel.WideFraction, cfg.Carousel.NarrowFraction)
		fmt.Fprintf(out, "carousel.swipe       %dpx (%dpx per column)\n", cfg.Carousel.SwipeThreshold, cfg.Carousel.CellWidthPx)
		fmt.Fprintf(out, "carousel.height      %d\n", cfg.Carousel.Height)
		fmt.Fprintf(out, "log.path             %s\n", cfg.Log.Path)
		fmt.Fprintf(out, "log.level            %s\n", cfg.Log.Level)
		return nil
	},
}

var forceInit bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.Path(cfgPath)
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s exists; use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
}
