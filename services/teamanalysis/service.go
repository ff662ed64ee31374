// Package teamanalysis runs the per-team scouting pipeline: fetch the
// roster and stats pages, extract and normalize player records, join
// them against the static reference datasets and produce one Report per
// team.
package teamanalysis

import (
	"context"
	"log/slog"
	"sync"
	"vbscout-backend/lib/scrapers/roster"
	"vbscout-backend/lib/scrapers/stats"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("vbscout.services.teamanalysis")

// Fetcher supplies page content by URL. Network policy (retries,
// timeouts, throttling) lives behind this interface, not in the
// pipeline.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Service struct {
	fetcher Fetcher
	refs    *References
}

func NewService(fetcher Fetcher, refs *References) *Service {
	return &Service{fetcher: fetcher, refs: refs}
}

// AnalyzeTeam runs the full pipeline for one team. It never fails the
// run for content problems: missing pages and unparseable fields come
// back as diagnostics on the report. The returned error covers only
// context cancellation.
func (s *Service) AnalyzeTeam(ctx context.Context, team Team) (Report, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeTeam")
	defer span.End()
	span.SetAttributes(attribute.String("team", team.Name))

	report := Report{Team: team}
	if rank, ok := s.refs.Ranking(team.Name); ok {
		report.Rank = rank.Rank
		report.Record = rank.Record
	}

	html, err := s.fetcher.Fetch(ctx, team.RosterURL)
	if err != nil {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		slog.WarnContext(ctx, "roster fetch failed",
			"team", team.Name, "url", team.RosterURL, "err", err)
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Kind: DiagPageMiss, Team: team.Name, Field: "roster",
			Detail: err.Error(),
		})
		return report, nil
	}

	result, err := roster.Parse(ctx, team.RosterURL, html)
	if err != nil {
		slog.WarnContext(ctx, "no roster recognized",
			"team", team.Name, "url", team.RosterURL)
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Kind: DiagPageMiss, Team: team.Name, Field: "roster",
			Detail: err.Error(),
		})
		return report, nil
	}
	report.Strategy = result.Strategy

	book := s.fetchStats(ctx, team, &report)

	for _, raw := range result.Players {
		player, diags := assemblePlayer(team, raw, s.refs)
		report.Diagnostics = append(report.Diagnostics, diags...)
		report.Diagnostics = append(report.Diagnostics, attachStats(&player, book)...)
		report.Players = append(report.Players, player)
	}

	report.Returning, report.Incoming = roleBreakdowns(team, report.Players, s.refs)

	span.SetAttributes(
		attribute.Int("players", len(report.Players)),
		attribute.String("strategy", string(report.Strategy)),
	)
	return report, nil
}

func (s *Service) fetchStats(ctx context.Context, team Team, report *Report) *stats.Book {
	if team.StatsURL == "" {
		return nil
	}

	html, err := s.fetcher.Fetch(ctx, team.StatsURL)
	if err != nil {
		slog.WarnContext(ctx, "stats fetch failed, continuing without stats",
			"team", team.Name, "url", team.StatsURL, "err", err)
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Kind: DiagPageMiss, Team: team.Name, Field: "stats",
			Detail: err.Error(),
		})
		return nil
	}

	book, err := stats.Parse(ctx, html)
	if err != nil {
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Kind: DiagPageMiss, Team: team.Name, Field: "stats",
			Detail: err.Error(),
		})
		return nil
	}
	return book
}

// AnalyzeAll runs every team through AnalyzeTeam on a bounded worker
// pool. Team runs share no mutable state; the only synchronization is
// the accumulation of finished reports, which keep input order.
func (s *Service) AnalyzeAll(ctx context.Context, teams []Team, workers int) ([]Report, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeAll")
	defer span.End()
	span.SetAttributes(attribute.Int("teams", len(teams)))

	if workers < 1 {
		workers = 1
	}

	reports := make([]Report, len(teams))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, team := range teams {
		wg.Add(1)
		go func(i int, team Team) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			report, err := s.AnalyzeTeam(ctx, team)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			reports[i] = report
		}(i, team)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return reports, nil
}
