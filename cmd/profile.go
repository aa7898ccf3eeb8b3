package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/asselect/internal/config"
	"github.com/sells-group/asselect/internal/model"
	"github.com/sells-group/asselect/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved settings profiles",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return cfg.Validate("store")
	},
}

var profileSettings string

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save settings under a name, replacing any existing profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), cfg, func(ctx context.Context, h store.Store) error {
			set, err := resolveSettings(cfg, profileSettings)
			if err != nil {
				return err
			}
			p, err := h.SaveProfile(ctx, args[0], set)
			if err != nil {
				return eris.Wrap(err, "profile save")
			}
			fmt.Fprintf(os.Stderr, "Saved profile %s (%s)\n", p.Name, p.ID)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile's settings as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), cfg, func(ctx context.Context, h store.Store) error {
			p, err := h.GetProfile(ctx, args[0])
			if err != nil {
				return eris.Wrap(err, "profile show")
			}
			return writeProfileYAML(os.Stdout, p)
		})
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd.Context(), cfg, func(ctx context.Context, h store.Store) error {
			profiles, err := h.ListProfiles(ctx)
			if err != nil {
				return eris.Wrap(err, "profile list")
			}
			if len(profiles) == 0 {
				fmt.Fprintln(os.Stderr, "No profiles found.")
				return nil
			}
			formatProfileList(os.Stdout, profiles)
			return nil
		})
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), cfg, func(ctx context.Context, h store.Store) error {
			if err := h.DeleteProfile(ctx, args[0]); err != nil {
				return eris.Wrap(err, "profile delete")
			}
			fmt.Fprintf(os.Stderr, "Deleted profile %s\n", args[0])
			return nil
		})
	},
}

func init() {
	profileSaveCmd.Flags().StringVar(&profileSettings, "settings", "", "settings YAML file (default from config)")

	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func writeProfileYAML(w io.Writer, p *model.Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p.Settings); err != nil {
		return eris.Wrap(err, "profile: encode")
	}
	return enc.Close()
}

// formatProfileList writes a tabular list of profiles to w.
func formatProfileList(out io.Writer, profiles []model.Profile) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tFORMAT\tMAX LEVEL\tUPDATED")
	for _, p := range profiles {
		_, _ = fmt.Fprintf(w, "%s\t%s\tFL%d\t%s\n",
			p.Name,
			p.Settings.Options.Format,
			p.Settings.Options.MaxLevel,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// withStore opens the configured store for the duration of fn.
func withStore(ctx context.Context, c *config.Config, fn func(context.Context, store.Store) error) error {
	st, err := initStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	return fn(ctx, st)
}
