// Package roles infers lane positions from champion picks and summoner spells.
package roles

import (
	"sort"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

// Summoner spell ids as reported by the live-match endpoint.
const (
	SpellCleanse  = 1
	SpellExhaust  = 3
	SpellFlash    = 4
	SpellGhost    = 6
	SpellHeal     = 7
	SpellSmite    = 11
	SpellTeleport = 12
	SpellIgnite   = 14
	SpellBarrier  = 21
)

// detectedRoleBonus is added to a pair's score when it matches the detected role.
const detectedRoleBonus = 50

const (
	iTop = iota
	iJungle
	iMid
	iADC
	iSupport
)

// spellAdjustment scales role weights when a spell is present.
type spellAdjustment struct {
	spell  int
	factor [5]float64
}

// adjustments are applied in order; a factor of 1 leaves the role untouched.
var adjustments = []spellAdjustment{
	{SpellHeal, [5]float64{0.3, 1, 0.5, 2, 1.3}},
	{SpellTeleport, [5]float64{2, 1, 1.5, 0.3, 0.3}},
	{SpellExhaust, [5]float64{1, 1, 0.7, 0.5, 2}},
	{SpellBarrier, [5]float64{1, 1, 1.5, 1.3, 0.5}},
	{SpellIgnite, [5]float64{1.1, 1, 1.3, 1, 1.2}},
	{SpellGhost, [5]float64{1.3, 1, 1.2, 1, 1}},
	{SpellCleanse, [5]float64{1, 1, 1.3, 1.5, 1}},
}

// PriorFor returns the role distribution known for a champion, and false
// when the champion is not in the table.
func PriorFor(championID int) (Prior, bool) {
	p, ok := priors[championID]
	return p, ok
}

// DetectRole guesses a single participant's role. Smite is treated as
// ground truth for jungle; otherwise the champion prior is reshaped by the
// summoner spells and the strictly highest weight wins.
func DetectRole(championID, spell1, spell2 int) domain.Role {
	has := func(spell int) bool { return spell1 == spell || spell2 == spell }
	if has(SpellSmite) {
		return domain.RoleJungle
	}

	prior := priors[championID]
	if prior.isZero() {
		prior = defaultPrior
	}
	w := prior.weights()
	w[iJungle] = 0

	for _, adj := range adjustments {
		if !has(adj.spell) {
			continue
		}
		for i := range w {
			w[i] *= adj.factor[i]
		}
	}

	best, role := 0.0, domain.RoleUnknown
	for i, v := range w {
		if v > best {
			best, role = v, domain.Roles[i]
		}
	}
	return role
}

// AssignRoles gives the five players of one team distinct roles and returns
// them ordered TOP, JUNGLE, MID, ADC, SUPPORT, with any leftover players
// labeled UNKNOWN at the end in input order. The input slice is not modified.
//
// The assignment is greedy: the first smite carrier is locked into jungle,
// then the highest scoring (player, open role) pair is taken repeatedly.
func AssignRoles(team []domain.Participant) []domain.Participant {
	out := make([]domain.Participant, len(team))
	copy(out, team)

	detected := make([]domain.Role, len(out))
	for i, p := range out {
		detected[i] = DetectRole(p.ChampionID, p.Spell1, p.Spell2)
		out[i].Role = domain.RoleUnknown
	}

	var taken [5]bool
	assigned := make([]bool, len(out))
	open := len(domain.Roles)

	for i := range out {
		if detected[i] == domain.RoleJungle {
			out[i].Role = domain.RoleJungle
			assigned[i] = true
			taken[iJungle] = true
			open--
			break
		}
	}

	for open > 0 {
		bestScore, bestIdx, bestRole := -1.0, -1, -1
		for i, p := range out {
			if assigned[i] {
				continue
			}
			weights := priors[p.ChampionID].weights()
			for r, role := range domain.Roles {
				if taken[r] {
					continue
				}
				score := weights[r]
				if detected[i] == role {
					score += detectedRoleBonus
				}
				if score > bestScore {
					bestScore, bestIdx, bestRole = score, i, r
				}
			}
		}
		if bestIdx < 0 {
			break
		}
		out[bestIdx].Role = domain.Roles[bestRole]
		assigned[bestIdx] = true
		taken[bestRole] = true
		open--
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Role.Index() < out[b].Role.Index()
	})
	return out
}

var roleIcons = map[domain.Role]string{
	domain.RoleTop:     "🗡️",
	domain.RoleJungle:  "🌲",
	domain.RoleMid:     "⭐",
	domain.RoleADC:     "🏹",
	domain.RoleSupport: "🛡️",
}

// RoleIcon returns the emoji used when rendering a role.
func RoleIcon(role domain.Role) string {
	if icon, ok := roleIcons[role]; ok {
		return icon
	}
	return "❓"
}
