package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/smarturl/core/service"
	"github.com/gaurav-prasanna/smarturl/core/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored preferences",
	Long: `Settings manages the preferences kept in the SmartURL store:

  downloadFolder     sub-folder (or absolute folder) shortcuts are saved to
  filenameTemplate   {keywords}, {title}, {domain} and {date} placeholders
  maxKeywords        keywords joined into a filename (1-5)
  analysisMode       simple or detailed (readability-based main content)
  autoDownload       analyze also saves the shortcut
  showNotifications  print status notifications`,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.svc.Handle(cmd.Context(), service.LoadSettings{})
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(res.(*service.SettingsResult).Settings)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		value, err := settingValue(a.svc.Settings(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		next := a.svc.Settings()
		if err := next.Set(args[0], args[1]); err != nil {
			return err
		}
		if _, err := a.svc.Handle(cmd.Context(), service.SaveSettings{Settings: next}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.svc.Handle(cmd.Context(), service.SaveSettings{Settings: settings.Defaults()}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Settings reset to defaults")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd, settingsResetCmd)
}

// settingValue returns the field with the given JSON name, unquoted.
func settingValue(s settings.Settings, key string) (string, error) {
	doc, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return "", err
	}
	v, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return fmt.Sprint(v), nil
}
