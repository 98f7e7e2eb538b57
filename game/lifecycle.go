package game

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/strategy"
)

const nameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// nameSuffixLen is the number of random characters appended to player names.
const nameSuffixLen = 7

// Player is a read-only snapshot of one population member.
// Snapshots are safe to share across match workers.
type Player struct {
	ID       uint32
	Name     string
	Kind     strategy.Kind
	Policy   strategy.Policy
	Born     int
	ParentID uint32
}

// NewPlayer builds a standalone player outside any population.
// Useful for running single matches.
func NewPlayer(id uint32, kind strategy.Kind) Player {
	return Player{
		ID:     id,
		Name:   fmt.Sprintf("%s-%d", kind, id),
		Kind:   kind,
		Policy: strategy.New(kind),
	}
}

// spawnPlayer creates a new player entity of the given kind.
func (g *Game) spawnPlayer(kind strategy.Kind, born int, parentID uint32) uint32 {
	g.nextID++
	id := g.nextID

	ident := components.Identity{ID: id, Name: g.playerName(kind)}
	strat := components.Strategy{Kind: kind, Policy: strategy.New(kind)}
	lin := components.Lineage{Born: born, ParentID: parentID}

	g.playerMapper.NewEntity(&ident, &strat, &lin)
	g.population++
	return id
}

// playerName returns the kind name plus a random alphanumeric suffix.
func (g *Game) playerName(kind strategy.Kind) string {
	suffix := make([]byte, nameSuffixLen)
	for i := range suffix {
		suffix[i] = nameAlphabet[g.nameRng.Intn(len(nameAlphabet))]
	}
	return kind.String() + "-" + string(suffix)
}

// spawnFounders creates the founding population from config.
func (g *Game) spawnFounders(founders []config.FounderConfig) error {
	for _, f := range founders {
		kind, err := strategy.ParseKind(f.Kind)
		if err != nil {
			return fmt.Errorf("population.founders: %w", err)
		}
		for i := 0; i < f.Count; i++ {
			g.spawnPlayer(kind, 0, 0)
		}
	}
	return nil
}

// snapshot captures the current population ordered by ID.
func (g *Game) snapshot() []Player {
	players := make([]Player, 0, g.population)

	query := g.playerFilter.Query()
	for query.Next() {
		ident, strat, lin := query.Get()
		players = append(players, Player{
			ID:       ident.ID,
			Name:     ident.Name,
			Kind:     strat.Kind,
			Policy:   strat.Policy,
			Born:     lin.Born,
			ParentID: lin.ParentID,
		})
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players
}

// spawnOffspring adds one player per spawn request, respecting the
// population cap. Returns the kinds actually spawned.
func (g *Game) spawnOffspring(requests []spawnRequest, born int) []strategy.Kind {
	spawned := make([]strategy.Kind, 0, len(requests))
	for _, req := range requests {
		if g.cfg.Evolution.MaxPopulation > 0 && g.population >= g.cfg.Evolution.MaxPopulation {
			g.logger.Info("population cap reached",
				"cap", g.cfg.Evolution.MaxPopulation,
				"dropped", len(requests)-len(spawned),
			)
			break
		}
		g.spawnPlayer(req.kind, born, req.parentID)
		spawned = append(spawned, req.kind)
	}
	return spawned
}

// spawnRequest asks for one new player of kind, credited to parentID.
type spawnRequest struct {
	kind     strategy.Kind
	parentID uint32
}

// spawnRequests applies every threshold independently to every standing.
// A fitness above n thresholds yields n requests.
func spawnRequests(standings []Standing, thresholds []float64) []spawnRequest {
	var reqs []spawnRequest
	for _, s := range standings {
		for _, t := range thresholds {
			if s.Fitness > t {
				reqs = append(reqs, spawnRequest{kind: s.Player.Kind, parentID: s.Player.ID})
			}
		}
	}
	return reqs
}
