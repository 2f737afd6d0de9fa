package statemachine

import "github.com/jefe-cli/jefe/internal/domain"

// ReconcileLiveness implements spec.md §4.4's per-render-cycle liveness
// pass: for every agent with status Running and a PTY slot, isAlive(slot)
// is consulted; false transitions it to Dead. isAlive is a caller-supplied
// query function (ordinarily backed by ptymgr.Manager.IsAlive) so this
// reducer itself performs no I/O. Returns whether any agent's status
// changed, so a caller can avoid a redundant re-render (spec.md §4.4: "the
// reducer writes these transitions only on actual change to avoid infinite
// re-render loops").
func (s *State) ReconcileLiveness(isAlive func(slot int) bool) bool {
	changed := false
	for _, repo := range s.Catalog.Repositories {
		for _, agent := range repo.Agents {
			if agent.Status != domain.StatusRunning {
				continue
			}
			if agent.PTYSlot == nil {
				continue
			}
			if !isAlive(*agent.PTYSlot) {
				agent.Status = domain.StatusDead
				changed = true
			}
		}
	}
	return changed
}
