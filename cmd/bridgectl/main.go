// bridgectl is a small client for the uebridge listener. It sends commands
// over loopback HTTP and prints the JSON responses.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"resty.dev/v3"
)

var (
	bridgeURL string
	timeout   time.Duration
)

func main() {
	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Send commands to a running uebridge listener",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&bridgeURL, "url", "http://127.0.0.1:8765", "Base URL of the bridge listener")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 35*time.Second, "HTTP request timeout")

	root.AddCommand(statusCmd(), sendCmd(), helpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(bridgeURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the listener's status document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			defer client.Close()

			res, err := client.R().Get("/")
			if err != nil {
				return err
			}
			return printJSON(cmd, res.Bytes())
		},
	}
}

func sendCmd() *cobra.Command {
	var paramsJSON string
	var params []string

	cmd := &cobra.Command{
		Use:   "send <command>",
		Short: "Send one command, e.g. 'send actor_spawn -p assetPath=/Game/SM_Wall'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := buildParams(paramsJSON, params)
			if err != nil {
				return err
			}

			client := newClient()
			defer client.Close()

			res, err := client.R().
				SetBody(map[string]any{"type": args[0], "params": payload}).
				Post("/")
			if err != nil {
				return err
			}
			if err := printJSON(cmd, res.Bytes()); err != nil {
				return err
			}
			if res.StatusCode() >= 400 {
				return fmt.Errorf("listener answered %s", res.Status())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&paramsJSON, "json", "", "Parameters as a raw JSON object")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter as key=value (JSON values accepted)")
	return cmd
}

func helpCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the commands the listener exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			defer client.Close()

			body := map[string]any{"type": "system_help", "params": map[string]any{}}
			if category != "" {
				body["params"] = map[string]any{"category": category}
			}
			res, err := client.R().SetBody(body).Post("/")
			if err != nil {
				return err
			}
			return printJSON(cmd, res.Bytes())
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Restrict the listing to one category")
	return cmd
}

// buildParams merges --json and --param flags into one parameter object.
// --param values parse as JSON when they can, and fall back to strings.
func buildParams(paramsJSON string, pairs []string) (map[string]any, error) {
	out := map[string]any{}
	if paramsJSON != "" {
		if err := json.Unmarshal([]byte(paramsJSON), &out); err != nil {
			return nil, fmt.Errorf("invalid --json value: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		out[key] = parsed
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		cmd.Println(string(raw))
		return nil
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(pretty))
	return nil
}
