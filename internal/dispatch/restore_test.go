package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jefe-cli/jefe/internal/domain"
)

func slotPtr(n int) *int { return &n }

func TestRestorationOrderFillsGapsAndOrdersBySlot(t *testing.T) {
	repo := domain.NewRepository("widgets", "/work/widgets", "default")
	a0 := domain.NewAgent("a0", "/work/widgets/a0", "default", "")
	a0.PTYSlot = slotPtr(0)
	a2 := domain.NewAgent("a2", "/work/widgets/a2", "default", "")
	a2.PTYSlot = slotPtr(2)
	unassigned := domain.NewAgent("unassigned", "/work/widgets/u", "default", "")
	repo.Agents = []*domain.Agent{a0, a2, unassigned}

	cat := domain.NewCatalog()
	cat.Repositories = []*domain.Repository{repo}

	order := restorationOrder(cat)

	assert.Len(t, order, 3)
	assert.Same(t, a0, order[0])
	assert.Nil(t, order[1])
	assert.Same(t, a2, order[2])
}

func TestRestorationOrderEmptyCatalog(t *testing.T) {
	cat := domain.NewCatalog()
	assert.Empty(t, restorationOrder(cat))
}
