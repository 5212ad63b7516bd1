package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/control"
	"github.com/vietddude/payguard/internal/resilience/apierror"
)

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Call read-only vendor endpoints once and report the result",
	Run:   runProbe,
}

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 2*time.Minute, "overall timeout including retries")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg, log := bootstrap()

	c := newClient(cfg, log)
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	res, err := control.Probe(ctx,
		c.Locations(cfg.GroupOptions(client.LocationsGroup)...),
		c.Customers(cfg.GroupOptions(client.CustomersGroup)...),
	)
	if err != nil {
		if apiErr, ok := apierror.As(err); ok {
			slog.Error("Probe failed", "error", apiErr)
		} else {
			slog.Error("Probe failed", "error", err)
		}
		os.Exit(1)
	}

	stats := c.Stats()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "LOCATIONS\tCUSTOMERS\tDURATION\tSTATUS\tREQUESTS\tFAILURES\tTHROTTLED")
	_, _ = fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%d\t%d\n",
		res.Locations, res.Customers, res.Duration.Round(time.Millisecond),
		stats.Status, stats.Requests, stats.Failures, stats.Throttled)
	_ = w.Flush()
}
