package persistence

import (
	"github.com/jefe-cli/jefe/internal/domain"
)

// catalogFile is the on-disk shape of the catalog: a flat list of
// repositories and a flat list of agents, each agent carrying the slug of
// the repository that owns it. This mirrors the teacher's
// StorageData{Instances, Groups} split (internal/session/storage.go) rather
// than a naively nested tree, because a flat file is what makes "drop
// agents pointing at unknown repositories" (spec.md §4.1) a real sanitization
// step instead of a structural impossibility.
type catalogFile struct {
	Version      int                `json:"version"`
	Repositories []repositoryRecord `json:"repositories"`
	Agents       []agentRecord      `json:"agents"`
}

type repositoryRecord struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	BaseDir        string `json:"base_dir"`
	DefaultProfile string `json:"default_profile,omitempty"`
}

type agentRecord struct {
	RepoSlug              string `json:"repo_slug"`
	ID                     string `json:"id"`
	DisplayID              int64  `json:"display_id"`
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	WorkDir                string `json:"work_dir"`
	Profile                string `json:"profile,omitempty"`
	Mode                   string `json:"mode,omitempty"`
	WorkDirManuallyEdited  bool   `json:"work_dir_manually_edited,omitempty"`
	PTYSlot                *int   `json:"pty_slot,omitempty"`
	CreatedAt              string `json:"created_at"`
}

// flatten converts the canonical nested Catalog into the on-disk flat form,
// preserving per-repository agent order via Agents' overall slice order.
func flatten(cat *domain.Catalog) catalogFile {
	cf := catalogFile{Version: cat.Version}
	for _, r := range cat.Repositories {
		cf.Repositories = append(cf.Repositories, repositoryRecord{
			Name: r.Name, Slug: r.Slug, BaseDir: r.BaseDir, DefaultProfile: r.DefaultProfile,
		})
		for _, a := range r.Agents {
			cf.Agents = append(cf.Agents, agentRecord{
				RepoSlug:              r.Slug,
				ID:                    a.ID,
				DisplayID:             a.DisplayID,
				Name:                  a.Name,
				Description:           a.Description,
				WorkDir:               a.WorkDir,
				Profile:               a.Profile,
				Mode:                  a.Mode,
				WorkDirManuallyEdited: a.WorkDirManuallyEdited,
				PTYSlot:               a.PTYSlot,
				CreatedAt:             a.CreatedAt.Format(timeLayout),
			})
		}
	}
	return cf
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// unflatten reconstructs a nested Catalog from the on-disk flat form,
// dropping any agent whose repo_slug does not match a known repository
// (spec.md §4.1 sanitization: "drop agents pointing at unknown repositories").
// It returns the reconstructed catalog and the count of dropped agents.
func unflatten(cf catalogFile) (*domain.Catalog, int) {
	cat := &domain.Catalog{Version: cf.Version}
	bySlug := map[string]*domain.Repository{}
	for _, rr := range cf.Repositories {
		repo := &domain.Repository{
			Name: rr.Name, Slug: rr.Slug, BaseDir: rr.BaseDir, DefaultProfile: rr.DefaultProfile,
		}
		bySlug[rr.Slug] = repo
		cat.Repositories = append(cat.Repositories, repo)
	}

	dropped := 0
	for _, ar := range cf.Agents {
		repo, ok := bySlug[ar.RepoSlug]
		if !ok {
			dropped++
			continue
		}
		a := &domain.Agent{
			ID:                    ar.ID,
			DisplayID:             ar.DisplayID,
			Name:                  ar.Name,
			Description:           ar.Description,
			WorkDir:               ar.WorkDir,
			Profile:               ar.Profile,
			Mode:                  ar.Mode,
			WorkDirManuallyEdited: ar.WorkDirManuallyEdited,
			PTYSlot:               ar.PTYSlot,
			Status:                domain.StatusDead, // derived at reconciliation, never trusted from disk
		}
		if t, err := parseTime(ar.CreatedAt); err == nil {
			a.CreatedAt = t
		}
		repo.Agents = append(repo.Agents, a)
	}
	return cat, dropped
}
