package core

import (
	"context"
	"fmt"
	"path/filepath"
)

// RemoteDirectory is the remote browsing surface used by the fetch flow.
// *convai.Client satisfies it.
type RemoteDirectory interface {
	ListAgents(ctx context.Context, search string) ([]RemoteAgent, error)
	GetAgent(ctx context.Context, id string) (Document, error)
}

// FetchOptions controls a fetch (import-from-remote) pass.
type FetchOptions struct {
	Search string
	DryRun bool
}

// FetchResult is the outcome for one remote agent considered by Fetch.
type FetchResult struct {
	Name       string
	ID         string
	ConfigPath string // written config location; empty when skipped
	Skipped    bool   // already declared locally
	Err        error
}

// fetchedSections are the top-level keys copied from a remote agent document
// into the local config file. Everything else the API returns (metadata,
// timestamps, access info) is not desired state and is dropped.
var fetchedSections = []string{"name", "conversation_config", "platform_settings", "tags"}

// Fetch imports remote agents that are not yet declared locally: each one
// gets a config document written under agent_configs/, a registry entry
// carrying its remote id, and a lock record so the next sync pass reports
// it unchanged. Per-agent failures are recorded and the pass continues.
func Fetch(ctx context.Context, dir string, remote RemoteDirectory, opts FetchOptions) ([]FetchResult, error) {
	reg, err := ReadRegistry(dir)
	if err != nil {
		return nil, err
	}

	agents, err := remote.ListAgents(ctx, opts.Search)
	if err != nil {
		return nil, fmt.Errorf("listing remote agents: %w", err)
	}

	declaredIDs := make(map[string]bool, len(reg.Agents))
	for _, def := range reg.Agents {
		if def.ID != "" {
			declaredIDs[def.ID] = true
		}
	}

	lf := ReadLockFile(dir)
	var results []FetchResult
	dirty := false

	for _, remoteAgent := range agents {
		res := FetchResult{Name: remoteAgent.Name, ID: remoteAgent.ID}

		if _, ok := reg.Find(remoteAgent.Name); ok || declaredIDs[remoteAgent.ID] {
			res.Skipped = true
			results = append(results, res)
			continue
		}

		res.ConfigPath = DeriveConfigPath(remoteAgent.Name)
		if opts.DryRun {
			results = append(results, res)
			continue
		}

		full, err := remote.GetAgent(ctx, remoteAgent.ID)
		if err != nil {
			res.Err = fmt.Errorf("fetching %s: %w", remoteAgent.Name, err)
			results = append(results, res)
			continue
		}

		doc := Document{}
		for _, key := range fetchedSections {
			if v, ok := full[key]; ok {
				doc[key] = v
			}
		}
		if _, ok := doc["name"]; !ok {
			doc["name"] = remoteAgent.Name
		}

		path := filepath.Join(dir, filepath.FromSlash(res.ConfigPath))
		if err := WriteDocument(path, doc); err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		if err := reg.Add(AgentDef{Name: remoteAgent.Name, Config: res.ConfigPath, ID: remoteAgent.ID}); err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		lf.Upsert(remoteAgent.Name, DefaultEnvironment, remoteAgent.ID, Fingerprint(doc))
		dirty = true
		results = append(results, res)
	}

	if dirty {
		if err := WriteRegistry(dir, reg); err != nil {
			return results, err
		}
		if err := WriteLockFile(dir, lf); err != nil {
			return results, err
		}
	}

	return results, nil
}
