package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stahnma/pds-didweb/internal/cache"
	"github.com/stahnma/pds-didweb/internal/format"
	"github.com/stahnma/pds-didweb/internal/history"
	"github.com/stahnma/pds-didweb/internal/pds"
	"go.uber.org/zap"
)

// Result is one fetched and filtered listing.
type Result struct {
	Host    string
	Listing *pds.Listing
	Matches []pds.Repo
}

// Collect fetches host's repo listing and keeps the did:web accounts.
func (a *App) Collect(ctx context.Context, host string) (*Result, error) {
	a.ensureClient()
	log := a.logger()

	listing, err := a.fetchListing(ctx, host)
	if err != nil {
		return nil, err
	}
	if listing.Cursor != "" {
		log.Warn("PDS returned a cursor; only the first page of repos was fetched",
			zap.String("host", host), zap.String("cursor", listing.Cursor))
	}

	matches := pds.FilterDIDWeb(listing.Repos)
	log.Debug("Filtered listing",
		zap.String("host", host),
		zap.Int("total", listing.Total()),
		zap.Int("matched", len(matches)))

	return &Result{Host: host, Listing: listing, Matches: matches}, nil
}

func (a *App) fetchListing(ctx context.Context, host string) (*pds.Listing, error) {
	log := a.logger()
	key := cache.ListingKey(host)
	if !a.Config.NoCache {
		if listing, found := a.Cache.Listing(host); found {
			log.Debug("Cache hit", zap.String("key", key))
			return listing, nil
		}
		log.Debug("Cache miss", zap.String("key", key))
	}

	log.Debug("Fetching listing", zap.String("url", pds.ListReposURL(host)))
	listing, err := a.Client.ListRepos(ctx, host)
	if err != nil {
		return nil, err
	}
	if !a.Config.NoCache {
		a.Cache.SetListing(host, listing)
	}
	return listing, nil
}

func (a *App) runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()
	host := a.Config.ResolveHost(args)

	fmt.Fprintf(w, "Fetching repos from: %s\n\n", pds.ListReposURL(host))

	res, err := a.Collect(ctx, host)
	if err != nil {
		return err
	}

	if err := format.WriteReport(w, res.Listing.Total(), res.Matches); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if len(res.Matches) > 0 {
		if err := format.SaveJSON(a.Config.OutputFile, res.Matches); err != nil {
			return err
		}
	}

	a.recordHistory(ctx, res)

	if len(res.Matches) > 0 {
		return format.WriteSaved(w, a.Config.OutputFile)
	}
	return nil
}

func (a *App) recordHistory(ctx context.Context, res *Result) {
	if a.History == nil {
		return
	}
	run := history.Run{
		Date:    a.today(),
		Host:    res.Host,
		Total:   res.Listing.Total(),
		Matched: len(res.Matches),
	}
	if err := a.History.Record(ctx, run, res.Matches); err != nil {
		a.logger().Warn("Recording history failed", zap.Error(err))
	}
}
