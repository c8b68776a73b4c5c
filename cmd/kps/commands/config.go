package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Foxcapades/kps/pkg/cli"
	"github.com/Foxcapades/kps/pkg/layout"
	"github.com/Foxcapades/kps/pkg/source"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and profiles.

Profiles hold defaults for the ring capacity, byte order, output format,
input compression and record layout. Flags always override the profile.

Configuration is stored in ~/.kps/kps/config.yaml`,
}

var configAddProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Add or replace a profile",
	Long: `Add a profile with the specified name. Unset fields use the built-in
defaults when the profile is resolved.

Example:
  kps config add-profile wire --capacity 256 --byte-order little
  kps config add-profile sensor --layout @sensor --compression zstd -F json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		layoutRef, err := cmd.Flags().GetString("layout")
		if err != nil {
			return fmt.Errorf("failed to read 'layout' flag: %w", err)
		}
		if compression != "" {
			if _, err := source.ParseCompression(compression); err != nil {
				return err
			}
		}

		p := &cli.Profile{
			Capacity:    capacity,
			ByteOrder:   byteOrder,
			Format:      format,
			Compression: compression,
			Layout:      layoutRef,
		}
		if err := cfg.AddProfile(args[0], p); err != nil {
			return err
		}

		cli.PrintSuccess(os.Stdout, "Profile %q added", args[0])
		return nil
	},
}

var configDeleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteProfile(args[0]); err != nil {
			return err
		}

		cli.PrintSuccess(os.Stdout, "Profile %q deleted", args[0])
		return nil
	},
}

var configUseProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}

		cli.PrintSuccess(os.Stdout, "Switched to profile %q", args[0])
		return nil
	},
}

var configListProfilesCmd = &cobra.Command{
	Use:     "list-profiles",
	Aliases: []string{"get-profiles"},
	Short:   "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if len(cfg.Profiles) == 0 {
			fmt.Println("No profiles configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tCAPACITY\tBYTE_ORDER\tFORMAT\tCOMPRESSION\tLAYOUT")
		for _, name := range cfg.ListProfiles() {
			current := ""
			if name == cfg.CurrentProfile {
				current = "*"
			}
			p := cfg.Profiles[name]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", current, name,
				orDefault(p.Capacity), orDefault(p.ByteOrder), orDefault(p.Format),
				orDefault(p.Compression), orDefault(p.Layout))
		}
		return w.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the resolved profile",
	Long: `Print the profile that commands would use, after applying flags, in the
selected output format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		view := map[string]any{
			"capacity":    s.Capacity,
			"byte_order":  s.Order.String(),
			"format":      string(s.Format),
			"compression": string(s.Compression),
			"layout":      s.Layout,
		}
		if cfg, err := getConfig(); err == nil {
			view["config"] = cfg.Path()
			view["profile"] = cfg.CurrentProfile
			if profileName != "" {
				view["profile"] = profileName
			}
		}
		return outputResult(view, s.Format)
	},
}

var configAddLayoutCmd = &cobra.Command{
	Use:   "add-layout <name> <layout>",
	Short: "Save a named record layout",
	Long: `Parse a layout expression and save it as ~/.kps/kps/layouts/<name>.yaml,
where decode and profiles can refer to it as @name. Byte orders are written
out for every field, so the saved layout does not depend on --byte-order.

Example:
  kps config add-layout sensor "id:u16, seq:u32le, temp:f32" --filter 'select(.temp > 30)'
  kps decode frames.bin -l @sensor`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		l, err := layout.Parse(args[1], s.Order)
		if err != nil {
			return err
		}
		l.Name = args[0]

		f := l.File()
		if f.Filter, err = cmd.Flags().GetString("filter"); err != nil {
			return fmt.Errorf("failed to read 'filter' flag: %w", err)
		}
		if _, err := layout.ParseFilter(f.Filter); err != nil {
			return err
		}

		paths, err := cli.NewPaths(appName)
		if err != nil {
			return err
		}
		if err := paths.EnsureLayoutDir(); err != nil {
			return fmt.Errorf("failed to create layout directory: %w", err)
		}
		path := paths.LayoutPath(args[0])
		if err := cli.SaveDocument(path, f); err != nil {
			return err
		}

		cli.PrintSuccess(os.Stdout, "Layout %q saved to %s (%d bytes per record)", args[0], path, l.Size())
		return nil
	},
}

func orDefault[T comparable](v T) string {
	var zero T
	if v == zero {
		return "(default)"
	}
	return fmt.Sprint(v)
}

func init() {
	configAddProfileCmd.Flags().String("layout", "", "default record layout expression, file or @name")
	configAddLayoutCmd.Flags().String("filter", "", "jq expression stored with the layout")

	configCmd.AddCommand(configAddProfileCmd)
	configCmd.AddCommand(configDeleteProfileCmd)
	configCmd.AddCommand(configUseProfileCmd)
	configCmd.AddCommand(configListProfilesCmd)
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configAddLayoutCmd)

	rootCmd.AddCommand(configCmd)
}
