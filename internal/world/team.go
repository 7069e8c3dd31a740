package world

import (
	"slices"

	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/util"
)

// Area is a region given by one-based x and y range lists.
type Area struct {
	X string `mapstructure:"x"`
	Y string `mapstructure:"y"`
}

// Contains reports whether loc lies in the area.
func (area Area) Contains(loc hex.Location) bool {
	return loc.MatchesRange(area.X, area.Y)
}

// Team is one side of the game.
type Team struct {
	TeamName   string
	Control    string
	Enemies    []int
	Clear      []Area
	Number     int
	Fog        bool
	enemiesSet bool
}

// NewTeam returns a team for the one-based side, with no fog and enemies decided by team name.
func NewTeam(side int, teamName, controller string) *Team {
	return &Team{Number: side, TeamName: teamName, Control: controller}
}

// WithEnemies sets the enemy sides explicitly and returns the team.
func (team *Team) WithEnemies(sides ...int) *Team {
	team.Enemies = sides
	team.enemiesSet = true

	return team
}

// WithFog covers the map in fog except for the clear areas and returns the team.
func (team *Team) WithFog(clear ...Area) *Team {
	team.Fog = true
	team.Clear = clear

	return team
}

// Side returns the one-based side number.
func (team *Team) Side() int { return team.Number }

// Name returns the team name, possibly a comma separated list.
func (team *Team) Name() string { return team.TeamName }

// Controller returns who plays the side, such as `human` or `ai`.
func (team *Team) Controller() string { return team.Control }

// Fogged reports whether loc is hidden from the team.
func (team *Team) Fogged(loc hex.Location) bool {
	if !team.Fog {
		return false
	}

	for _, area := range team.Clear {
		if area.Contains(loc) {
			return false
		}
	}

	return true
}

// IsEnemy reports whether side is an enemy. Teams added to a board without an explicit enemy
// list are enemies of every team they share no team name with.
func (team *Team) IsEnemy(side int) bool {
	return slices.Contains(team.Enemies, side)
}

// isEnemyByName is the team name rule for teams without an explicit enemy list.
func (team *Team) isEnemyByName(other *Team) bool {
	if team.Number == other.Number {
		return false
	}

	for _, name := range util.SplitList(team.TeamName) {
		if slices.Contains(util.SplitList(other.TeamName), name) {
			return false
		}
	}

	return true
}
