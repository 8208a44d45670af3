package core

import (
	"context"
	"fmt"
	"path/filepath"
)

// AgentRequest carries the document sections sent to the remote API.
// Nil PlatformSettings or Tags means "field not provided": the gateway must
// omit them from the outgoing request entirely, never send a null.
type AgentRequest struct {
	Name               string
	ConversationConfig map[string]any
	PlatformSettings   map[string]any
	Tags               []string
}

// Gateway is the remote operations the sync engine needs. *convai.Client
// satisfies it; tests use a fake.
type Gateway interface {
	CreateAgent(ctx context.Context, req AgentRequest) (string, error)
	UpdateAgent(ctx context.Context, id string, req AgentRequest) (string, error)
}

// SyncOptions controls one sync pass.
type SyncOptions struct {
	// DryRun computes decisions without remote calls or persistence.
	DryRun bool
	// Environment scopes lock records; empty means DefaultEnvironment.
	Environment string
}

// Engine runs sync passes over the declared agents of one project directory.
type Engine struct {
	dir     string
	gateway Gateway
}

// NewEngine creates a sync engine for the given project directory. gateway
// may be nil only for dry-run passes.
func NewEngine(dir string, gateway Gateway) *Engine {
	return &Engine{dir: dir, gateway: gateway}
}

// Sync runs one pass over every declared agent: load its document,
// fingerprint it, compare against the lock ledger, and create or update the
// remote agent when the content changed. Per-agent failures (missing or
// unparsable config, remote call errors) are recorded in the report and the
// pass continues; only missing-registry and missing-gateway preconditions
// are fatal. The ledger is written once at the end, and only if a record
// changed.
func (e *Engine) Sync(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	reg, err := ReadRegistry(e.dir)
	if err != nil {
		return nil, err
	}
	if e.gateway == nil && !opts.DryRun {
		return nil, fmt.Errorf("no API client configured")
	}

	env := opts.Environment
	if env == "" {
		env = DefaultEnvironment
	}

	lf := ReadLockFile(e.dir)
	report := &SyncReport{DryRun: opts.DryRun}
	ledgerDirty := false
	registryDirty := false

	for i := range reg.Agents {
		def := &reg.Agents[i]
		res := e.syncAgent(ctx, def, lf, env, opts.DryRun, &ledgerDirty, &registryDirty)
		report.Results = append(report.Results, res)
	}

	if opts.DryRun {
		return report, nil
	}

	if registryDirty {
		if err := WriteRegistry(e.dir, reg); err != nil {
			return report, err
		}
	}
	if ledgerDirty {
		if err := WriteLockFile(e.dir, lf); err != nil {
			return report, err
		}
		report.LedgerSaved = true
	}

	return report, nil
}

// syncAgent decides and applies the action for a single agent. It mutates
// the in-memory ledger (and the declaration, when a new remote id is
// assigned) only after the remote call succeeded, so an interrupted pass
// persists exactly the outcomes of completed calls.
func (e *Engine) syncAgent(ctx context.Context, def *AgentDef, lf *LockFile, env string, dryRun bool, ledgerDirty, registryDirty *bool) AgentResult {
	res := AgentResult{Name: def.Name}

	doc, err := ReadDocument(filepath.Join(e.dir, filepath.FromSlash(def.Config)))
	if err != nil {
		res.Err = err
		return res
	}

	hash := Fingerprint(doc)
	prior, hasPrior := lf.Get(def.Name, env)

	switch {
	case !hasPrior:
		res.Action = ActionCreate
	case prior.Hash == hash:
		res.Action = ActionNone
		res.ID = prior.ID
		return res
	default:
		res.Action = ActionUpdate
	}

	// An id already on the declaration is authoritative: it means the
	// resource is known to exist even if the ledger was lost.
	id := prior.ID
	if def.ID != "" {
		id = def.ID
	}
	if res.Action == ActionCreate && id != "" {
		res.Action = ActionUpdate
	}

	if dryRun {
		res.ID = id
		return res
	}

	sections := ExtractSections(doc, def.Name)
	req := AgentRequest{
		Name:               sections.Name,
		ConversationConfig: sections.ConversationConfig,
		PlatformSettings:   sections.PlatformSettings,
		Tags:               outgoingTags(sections.Tags, env),
	}

	var newID string
	switch res.Action {
	case ActionCreate:
		newID, err = e.gateway.CreateAgent(ctx, req)
	case ActionUpdate:
		newID, err = e.gateway.UpdateAgent(ctx, id, req)
	}
	if err != nil {
		res.Err = fmt.Errorf("syncing %s: %w", def.Name, err)
		return res
	}
	if newID == "" {
		newID = id
	}

	lf.Upsert(def.Name, env, newID, hash)
	*ledgerDirty = true

	if def.ID == "" {
		def.ID = newID
		*registryDirty = true
	}

	res.ID = newID
	return res
}

// outgoingTags appends the environment tag to the document's tags when a
// non-default environment is targeted and the tag is not already present.
// The source document is never modified: the same file can be tagged
// differently per target environment.
func outgoingTags(tags []string, env string) []string {
	if env == DefaultEnvironment {
		return tags
	}
	for _, t := range tags {
		if t == env {
			return tags
		}
	}
	out := make([]string, 0, len(tags)+1)
	out = append(out, tags...)
	return append(out, env)
}
