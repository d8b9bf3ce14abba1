// Package seed imports registry records from a JSON file at startup. It is
// a thin bootstrap convenience; the resolution protocol never depends on it.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/linkgenetic/linkid-resolver/internal/registry"
)

// Entry is one seed record. Withdrawn entries are created and immediately
// tombstoned so the seed can reproduce a registry with history.
type Entry struct {
	TargetURI        string         `json:"targetUri"`
	MediaType        string         `json:"mediaType,omitempty"`
	Language         string         `json:"language,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Issuer           string         `json:"issuer,omitempty"`
	Withdrawn        bool           `json:"withdrawn,omitempty"`
	WithdrawalReason string         `json:"withdrawalReason,omitempty"`
}

// Load reads the seed file and creates its entries in the store. A missing
// file is not an error; a malformed file is. Returns the created ids.
func Load(ctx context.Context, path string, store registry.Store, logger *zap.Logger) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	created := make([]string, 0, len(entries))
	for _, entry := range entries {
		issuer := entry.Issuer
		if issuer == "" {
			issuer = "seed"
		}

		record, err := store.Create(ctx, registry.RegistrationPayload{
			TargetURI: entry.TargetURI,
			MediaType: entry.MediaType,
			Language:  entry.Language,
			Metadata:  entry.Metadata,
		}, issuer)
		if err != nil {
			return created, fmt.Errorf("seeding record for %q: %w", entry.TargetURI, err)
		}
		created = append(created, record.ID)

		if entry.Withdrawn {
			if err := store.Withdraw(ctx, record.ID, record.Issuer(), entry.WithdrawalReason); err != nil {
				return created, fmt.Errorf("withdrawing seeded record %s: %w", record.ID, err)
			}
		}
	}

	logger.Info("seed import complete", zap.Int("records", len(created)))
	return created, nil
}
