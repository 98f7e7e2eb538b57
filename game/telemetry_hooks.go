package game

import (
	"github.com/pthm-cable/dilemma/telemetry"
)

// recordSeason feeds a finished season into logging, the hall of fame and
// file output. Output failures are logged, never fatal to the run.
func (g *Game) recordSeason(report SeasonReport) {
	for _, s := range report.Standings {
		g.hof.Consider(telemetry.HallEntry{
			PlayerID: s.Player.ID,
			Name:     s.Player.Name,
			Kind:     s.Player.Kind.String(),
			Fitness:  s.Fitness,
			Season:   report.Season,
			Noise:    report.Stats.Noise,
		})
	}

	if g.cfg.Telemetry.LogStandings {
		g.logStandings(report)
	}
	g.logger.Info("season complete",
		"stats", report.Stats,
		"population", report.PopulationAfter,
		"perf", g.perf,
	)

	if g.output == nil {
		return
	}
	if err := g.output.WriteStandings(standingRecords(report.Season, report.Standings)); err != nil {
		g.logger.Error("failed to write standings", "error", err)
	}
	if err := g.output.WriteSeason(report.Stats); err != nil {
		g.logger.Error("failed to write season stats", "error", err)
	}
}

// logStandings logs the ranking best first.
func (g *Game) logStandings(report SeasonReport) {
	n := len(report.Standings)
	for i := n - 1; i >= 0; i-- {
		s := report.Standings[i]
		g.logger.Info("standing",
			"season", report.Season,
			"rank", n-i,
			"name", s.Player.Name,
			"kind", s.Player.Kind.String(),
			"fitness", s.Fitness,
		)
	}
}

// standingRecords converts ascending standings into CSV rows ranked best first.
func standingRecords(season int, standings []Standing) []telemetry.StandingRecord {
	n := len(standings)
	records := make([]telemetry.StandingRecord, 0, n)
	for i := n - 1; i >= 0; i-- {
		s := standings[i]
		records = append(records, telemetry.StandingRecord{
			Season:   season,
			Rank:     n - i,
			PlayerID: s.Player.ID,
			Name:     s.Player.Name,
			Kind:     s.Player.Kind.String(),
			Fitness:  s.Fitness,
			Total:    s.Total,
			Sides:    s.Sides,
			Born:     s.Player.Born,
			ParentID: s.Player.ParentID,
		})
	}
	return records
}
