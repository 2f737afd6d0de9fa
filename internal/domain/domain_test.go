package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugDerivation(t *testing.T) {
	cases := map[string]string{
		"Fix bug":       "fix-bug",
		"  Fix   Bug  ": "fix-bug",
		"Hello, World!": "hello-world",
		"already-slug":  "already-slug",
		"ÜberAgent":     "beragent",
	}
	for in, want := range cases {
		require.Equal(t, want, Slug(in), "Slug(%q)", in)
	}
}

func TestSlugIsIdempotent(t *testing.T) {
	inputs := []string{"Fix Bug!!", "already-slug", "  Mixed_Case 123  "}
	for _, s := range inputs {
		once := Slug(s)
		twice := Slug(once)
		require.Equal(t, once, twice, "Slug(Slug(%q))", s)
	}
}

func TestAgentWorkDirDefault(t *testing.T) {
	got := AgentWorkDir("/tmp/app", "Fix bug")
	require.Equal(t, "/tmp/app/fix-bug", got)
}

func TestNextDisplayIDMonotonic(t *testing.T) {
	ResetDisplayIDCounterForTest()
	a := NextDisplayID()
	b := NextDisplayID()
	c := NextDisplayID()
	require.True(t, a < b)
	require.True(t, b < c)
}

func TestNewAgentAssignsRunningStatus(t *testing.T) {
	ResetDisplayIDCounterForTest()
	a := NewAgent("Fix bug", "/tmp/app/fix-bug", "default", "--yolo --continue")
	require.Equal(t, StatusRunning, a.Status)
	require.EqualValues(t, 1, a.DisplayID)
	require.NotEmpty(t, a.ID)
}

func TestCatalogFindRepositoryAndAgent(t *testing.T) {
	cat := NewCatalog()
	repo := NewRepository("app", "/tmp/app", "default")
	agent := NewAgent("Fix bug", "/tmp/app/fix-bug", "default", "--yolo")
	repo.Agents = append(repo.Agents, agent)
	cat.Repositories = append(cat.Repositories, repo)

	found := cat.FindRepository("app")
	require.Same(t, repo, found)

	foundAgent, foundRepo := cat.FindAgent(agent.ID)
	require.Same(t, agent, foundAgent)
	require.Same(t, repo, foundRepo)

	_, missingRepo := cat.FindAgent("does-not-exist")
	require.Nil(t, missingRepo)
}
