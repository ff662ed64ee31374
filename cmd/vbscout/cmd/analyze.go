package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"vbscout-backend/lib/configutil"
	"vbscout-backend/lib/telemetry"
	"vbscout-backend/lib/vbnorm"
	"vbscout-backend/services/teamanalysis"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

type teamsConfig struct {
	Teams []teamanalysis.Team `json:"teams"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Runs the full pipeline for every configured team and prints the assembled rosters.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		ctx := cmd.Context()
		tel, err := telemetry.SetupFromEnv(ctx, "vbscout")
		if err != nil {
			log.Fatal(err)
		}
		defer tel.Shutdown(context.Background())

		cfg, err := configutil.ReadConfig[teamsConfig](teamsFile)
		if err != nil {
			log.Fatal(err)
		}
		refs, err := teamanalysis.LoadReferences(refsFile)
		if err != nil {
			log.Fatal(err)
		}

		service := teamanalysis.NewService(newFetcher(), refs)
		reports, err := service.AnalyzeAll(ctx, cfg.Teams, workers)
		if err != nil {
			log.Fatal(err)
		}

		for _, report := range reports {
			printReport(report)
		}
		printDiagnostics(reports)
	},
}

func printReport(report teamanalysis.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	title := report.Team.Name
	if report.Rank != "" {
		title += " (#" + report.Rank + ", " + report.Record + ")"
	}
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Name", "Pos", "Class", "Next", "Ht", "Kills", "Digs", "Flags"})

	for _, p := range report.Players {
		kills, digs := "", ""
		if p.HasStats {
			kills = stat(p.Stats.Stats, "kills")
			digs = stat(p.Stats.Stats, "digs")
		}
		t.AppendRow(table.Row{
			p.Name,
			p.Positions.String(),
			string(p.Class),
			string(p.ClassNext),
			vbnorm.FormatHeight(p.HeightInches),
			kills,
			digs,
			playerFlags(p),
		})
	}
	t.Render()

	slog.Info("team analyzed",
		"team", report.Team.Name,
		"strategy", report.Strategy,
		"players", len(report.Players),
		"returning_setters", len(report.Returning.Setters),
		"incoming_setters", len(report.Incoming.Setters),
	)
}

func stat(stats map[string]float64, key string) string {
	v, ok := stats[key]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func playerFlags(p teamanalysis.Player) string {
	flags := ""
	if p.IsGraduating {
		flags += "G"
	}
	if p.OutgoingTransfer {
		flags += "T-out"
	}
	if p.IncomingTransfer {
		flags += "T-in"
	}
	return flags
}

func printDiagnostics(reports []teamanalysis.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Diagnostics")
	t.AppendHeader(table.Row{"Kind", "Team", "Player", "Field", "Raw", "Detail"})

	total := 0
	for _, report := range reports {
		for _, d := range report.Diagnostics {
			t.AppendRow(table.Row{d.Kind, d.Team, d.Player, d.Field, d.Raw, d.Detail})
			total++
		}
	}
	if total > 0 {
		t.Render()
	}
}
