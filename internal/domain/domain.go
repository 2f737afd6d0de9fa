// Package domain holds Jefe's canonical entities: repositories, agents, and
// the presentation-only data they carry (todos, output lines). Nothing here
// performs I/O or owns behavior beyond simple invariants (slug derivation,
// display-ID assignment) — persistence, PTY lifecycle, and UI state all live
// in their own packages and reference these types by value or by ID.
package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// AgentStatus is the variant set of lifecycle states an Agent can be in.
// Only Running and Dead are derived automatically from session liveness;
// the rest are set by explicit user events or future instrumentation.
type AgentStatus string

const (
	StatusRunning   AgentStatus = "running"
	StatusCompleted AgentStatus = "completed"
	StatusErrored   AgentStatus = "errored"
	StatusWaiting   AgentStatus = "waiting"
	StatusPaused    AgentStatus = "paused"
	StatusQueued    AgentStatus = "queued"
	StatusDead      AgentStatus = "dead"
)

// TodoStatus is the lifecycle of a single TodoItem.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

// OutputKind distinguishes plain text output from a rendered tool call.
type OutputKind string

const (
	OutputText     OutputKind = "text"
	OutputToolCall OutputKind = "tool_call"
)

// ToolStatus is the progress of a tool call rendered in an OutputLine.
type ToolStatus string

const (
	ToolInProgress ToolStatus = "in_progress"
	ToolCompleted  ToolStatus = "completed"
	ToolFailed     ToolStatus = "failed"
)

// TodoItem is presentation data surfaced by an agent's sideband, not an
// authoritative source of truth.
type TodoItem struct {
	Content string     `json:"content"`
	Status  TodoStatus `json:"status"`
}

// OutputLine is one line of an agent's recent output, kept for the preview
// pane. Like TodoItem, it is presentation data only.
type OutputLine struct {
	Text       string     `json:"text"`
	Kind       OutputKind `json:"kind"`
	ToolStatus ToolStatus `json:"tool_status,omitempty"`
}

// displayIDCounter is the process-wide monotonic counter behind Agent.DisplayID.
// It only ever increases, so a freshly created agent always gets a new ID
// even after others have been deleted (spec invariant: strictly monotonic
// display IDs across a process lifetime).
var displayIDCounter int64

// NextDisplayID draws the next value from the process-wide counter.
func NextDisplayID() int64 {
	return atomic.AddInt64(&displayIDCounter, 1)
}

// ResetDisplayIDCounterForTest resets the counter to zero. Test-only: lets
// scenario tests assert on exact display IDs without cross-test leakage.
func ResetDisplayIDCounterForTest() {
	atomic.StoreInt64(&displayIDCounter, 0)
}

// SeedDisplayIDCounter fast-forwards the counter so it is at least highWaterMark.
// Called once at startup after loading the catalog so that display IDs stay
// strictly increasing across a restart instead of colliding with agents that
// already exist on disk.
func SeedDisplayIDCounter(highWaterMark int64) {
	for {
		cur := atomic.LoadInt64(&displayIDCounter)
		if cur >= highWaterMark {
			return
		}
		if atomic.CompareAndSwapInt64(&displayIDCounter, cur, highWaterMark) {
			return
		}
	}
}

// Agent is the primary work unit: a persistent, named, configured invocation
// of an external agent CLI hosted in its own multiplexer session.
type Agent struct {
	ID          string `json:"id"`
	DisplayID   int64  `json:"display_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WorkDir     string `json:"work_dir"`
	Profile     string `json:"profile,omitempty"`
	Mode        string `json:"mode,omitempty"`

	// WorkDirManuallyEdited latches once the user edits WorkDir directly in
	// a form; while false, WorkDir is regenerated from the owning
	// repository's base dir + slug(Name) whenever Name changes.
	WorkDirManuallyEdited bool `json:"work_dir_manually_edited,omitempty"`

	// PTYSlot indexes into the PTY manager's session vector. Nil means no
	// session has been allocated (e.g. spawn failed at creation).
	PTYSlot *int `json:"pty_slot,omitempty"`

	// Status is never persisted: it is always derived from session liveness
	// on load, so it is tagged json:"-".
	Status AgentStatus `json:"-"`

	CreatedAt time.Time `json:"created_at"`

	// Ephemeral telemetry. Never serialized; reset on process restart.
	ElapsedSeconds   int64        `json:"-"`
	TokenCountIn     int64        `json:"-"`
	TokenCountOut    int64        `json:"-"`
	EstimatedCostUSD float64      `json:"-"`
	Todos            []TodoItem   `json:"-"`
	RecentOutput     []OutputLine `json:"-"`

	// LastErrorMessage surfaces a spawn or attach failure to the user;
	// ephemeral, not persisted.
	LastErrorMessage string `json:"-"`
}

// NewAgent constructs an Agent with a fresh UUID, the next display ID, and
// status Running (the caller is expected to have just created a live PTY
// session; callers that fail to spawn should flip Status to Dead and record
// LastErrorMessage).
func NewAgent(name, workDir, profile, mode string) *Agent {
	return &Agent{
		ID:        uuid.NewString(),
		DisplayID: NextDisplayID(),
		Name:      name,
		WorkDir:   workDir,
		Profile:   profile,
		Mode:      mode,
		Status:    StatusRunning,
		CreatedAt: time.Now(),
	}
}

// Repository is a named group of agents sharing a base working directory
// and default profile.
type Repository struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	BaseDir        string   `json:"base_dir"`
	DefaultProfile string   `json:"default_profile,omitempty"`
	Agents         []*Agent `json:"agents"`
}

// NewRepository constructs a Repository, deriving Slug from Name.
func NewRepository(name, baseDir, defaultProfile string) *Repository {
	return &Repository{
		Name:           name,
		Slug:           Slug(name),
		BaseDir:        baseDir,
		DefaultProfile: defaultProfile,
	}
}

var (
	slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	slugEdges    = regexp.MustCompile(`^-+|-+$`)
)

// Slug derives a URL-safe identifier from a display name: lowercase,
// non-alphanumeric runs collapse to a single dash, leading/trailing dashes
// are trimmed. Slug is idempotent: Slug(Slug(s)) == Slug(s).
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugNonAlnum.ReplaceAllString(s, "-")
	s = slugEdges.ReplaceAllString(s, "")
	return s
}

// AgentWorkDir computes the default working directory for an agent named
// agentName under repository baseDir: {baseDir}/{slug(agentName)}.
func AgentWorkDir(baseDir, agentName string) string {
	return filepath.Join(baseDir, Slug(agentName))
}
