package commands

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/geo"
)

func newLocateCommand(a *app) *cobra.Command {
	var (
		forward  bool
		asJSON   bool
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Look up this machine's public IP and location and send it to the location log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := a.cfg.Geo
			client := &geo.Client{
				IPInfoURL: gc.IPInfoURL,
				Token:     gc.IPInfoToken,
				IPAPIURL:  gc.IPAPIURL,
				HTTP:      &http.Client{Timeout: gc.Timeout},
				Logger:    a.logger,
			}

			loc, err := client.Lookup(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(loc, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding location: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), loc.Text())
			}

			if !forward {
				return nil
			}
			if endpoint == "" {
				endpoint = gc.LogEndpoint
			}
			if err := client.Forward(cmd.Context(), endpoint, loc); err != nil {
				a.logger.Warn("location not sent", "endpoint", endpoint, "error", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forward, "forward", true, "send the location to the log endpoint")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw location document")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "log endpoint (default from config)")

	return cmd
}
