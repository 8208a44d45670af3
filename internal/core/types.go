// Package core provides the business logic for agentdeck.
// It has zero UI dependencies and is independently testable.
package core

// Document is an agent configuration document: an arbitrary nested mapping
// read from a per-agent JSON file. The core only inspects four top-level
// sections (name, conversation_config, platform_settings, tags); everything
// else passes through to the remote API untouched.
type Document = map[string]any

// AgentDef is one declared agent in the agents.json registry.
type AgentDef struct {
	Name   string `json:"name"`
	Config string `json:"config"`
	ID     string `json:"id,omitempty"`
}

// Registry is the parsed agents.json file.
type Registry struct {
	Agents []AgentDef `json:"agents"`
}

// LockRecord pins the last-synced state of one agent under one environment.
type LockRecord struct {
	ID   string `json:"id"`
	Hash string `json:"hash"`
}

// LockFile maps agent name -> environment -> lock record. Absence of a
// record means the agent has never been synced under that environment.
type LockFile struct {
	Agents map[string]map[string]LockRecord `json:"agents"`
}

// DefaultEnvironment is the environment tag used when none is given.
const DefaultEnvironment = "default"

// Sections are the recognized top-level pieces of a Document, extracted
// once per sync decision.
type Sections struct {
	Name               string
	ConversationConfig map[string]any
	PlatformSettings   map[string]any // nil when the document omits the section
	Tags               []string       // nil when the document omits the section
}

// SyncAction is the operation the sync engine decided on for one agent.
type SyncAction string

const (
	ActionNone   SyncAction = "none"
	ActionCreate SyncAction = "create"
	ActionUpdate SyncAction = "update"
)

// AgentResult is the outcome of one agent in a sync pass.
type AgentResult struct {
	Name   string
	Action SyncAction
	ID     string // remote id after the pass (empty on error or dry-run create)
	Err    error  // non-nil if the agent was skipped or its remote call failed
}

// SyncReport summarizes a whole sync pass.
type SyncReport struct {
	Results     []AgentResult
	DryRun      bool
	LedgerSaved bool
}

// Created counts agents created during the pass.
func (r *SyncReport) Created() int { return r.count(ActionCreate) }

// Updated counts agents updated during the pass.
func (r *SyncReport) Updated() int { return r.count(ActionUpdate) }

// Unchanged counts agents that needed no remote call.
func (r *SyncReport) Unchanged() int { return r.count(ActionNone) }

// Failed counts agents that were skipped or whose remote call failed.
func (r *SyncReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

func (r *SyncReport) count(action SyncAction) int {
	n := 0
	for _, res := range r.Results {
		if res.Action == action && res.Err == nil {
			n++
		}
	}
	return n
}

// AgentState classifies an agent for the status command.
type AgentState string

const (
	StateSynced        AgentState = "synced"
	StateChanged       AgentState = "changed"
	StateNew           AgentState = "new"
	StateMissingConfig AgentState = "missing-config"
	StateInvalidConfig AgentState = "invalid-config"
)

// AgentStatus aggregates everything the status command shows for one agent.
type AgentStatus struct {
	Name       string
	ID         string // declaration id, or ledger id when the declaration has none
	ConfigPath string
	Hash       string // current document fingerprint, empty if unreadable
	State      AgentState
	IDMismatch bool // declaration and ledger ids disagree
	Err        error
}

// RemoteAgent is one entry returned by the remote list operation.
type RemoteAgent struct {
	ID   string
	Name string
}
