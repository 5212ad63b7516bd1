package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/payguard/internal/client"
	"github.com/vietddude/payguard/internal/idempotency"
	redisclient "github.com/vietddude/payguard/internal/infra/redis"
)

var releaseKey bool

var idempotencyKeyCmd = &cobra.Command{
	Use:   "idempotency-key [reference]",
	Short: "Print an idempotency key, stable per reference when redis is configured",
	Args:  cobra.MaximumNArgs(1),
	Run:   runIdempotencyKey,
}

func init() {
	idempotencyKeyCmd.Flags().BoolVar(&releaseKey, "release", false, "release the key bound to the reference instead")
	rootCmd.AddCommand(idempotencyKeyCmd)
}

func runIdempotencyKey(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		fmt.Println(client.GenerateIdempotencyKey())
		return
	}
	reference := args[0]

	cfg, _ := bootstrap()

	var store idempotency.Store = idempotency.NewMemoryStore()
	if cfg.Redis.URL != "" {
		rc, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = rc.Close()
		}()
		store = redisclient.NewKeyRepo(rc)
	}

	keyring := idempotency.NewKeyring(store, cfg.Idempotency.TTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if releaseKey {
		if err := keyring.Release(ctx, reference); err != nil {
			slog.Error("Failed to release key", "reference", reference, "error", err)
			os.Exit(1)
		}
		return
	}

	key, err := keyring.Key(ctx, reference)
	if err != nil {
		slog.Error("Failed to issue key", "reference", reference, "error", err)
		os.Exit(1)
	}
	fmt.Println(key)
}
