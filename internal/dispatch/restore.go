package dispatch

import (
	"github.com/jefe-cli/jefe/internal/domain"
	"github.com/jefe-cli/jefe/internal/ptymgr"
)

// RestoreManagerSessions re-populates a freshly constructed Manager's
// session vector from a loaded catalog so that every agent's persisted
// pty_slot still indexes the session it named before restart (spec.md §9:
// "Sessions remain addressable by index even when the attached viewer has
// moved on"). Slots deleted agents left behind are filled with empty
// placeholders so later slots keep their original index.
func RestoreManagerSessions(mgr *ptymgr.Manager, cat *domain.Catalog) {
	for _, a := range restorationOrder(cat) {
		if a == nil {
			mgr.RestoreSession("", "", "")
			continue
		}
		mgr.RestoreSession(a.WorkDir, a.Profile, a.Mode)
	}
}

// restorationOrder returns, for slots 0..max(PTYSlot), the agent that owns
// each slot (nil for a slot a deleted agent left behind). Pulled out of
// RestoreManagerSessions so the slot-alignment logic is testable without a
// live Manager.
func restorationOrder(cat *domain.Catalog) []*domain.Agent {
	maxSlot := -1
	bySlot := map[int]*domain.Agent{}
	for _, r := range cat.Repositories {
		for _, a := range r.Agents {
			if a.PTYSlot == nil {
				continue
			}
			bySlot[*a.PTYSlot] = a
			if *a.PTYSlot > maxSlot {
				maxSlot = *a.PTYSlot
			}
		}
	}

	out := make([]*domain.Agent, maxSlot+1)
	for slot, a := range bySlot {
		out[slot] = a
	}
	return out
}
