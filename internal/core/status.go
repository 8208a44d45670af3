package core

import (
	"os"
	"path/filepath"
)

// CollectStatus computes the current state of every declared agent against
// the lock ledger, without touching the remote API. env empty means
// DefaultEnvironment.
func CollectStatus(dir, env string) ([]AgentStatus, error) {
	reg, err := ReadRegistry(dir)
	if err != nil {
		return nil, err
	}
	if env == "" {
		env = DefaultEnvironment
	}

	lf := ReadLockFile(dir)

	statuses := make([]AgentStatus, 0, len(reg.Agents))
	for _, def := range reg.Agents {
		statuses = append(statuses, agentStatus(dir, def, lf, env))
	}
	return statuses, nil
}

func agentStatus(dir string, def AgentDef, lf *LockFile, env string) AgentStatus {
	st := AgentStatus{
		Name:       def.Name,
		ID:         def.ID,
		ConfigPath: def.Config,
	}

	prior, hasPrior := lf.Get(def.Name, env)
	if st.ID == "" {
		st.ID = prior.ID
	}
	st.IDMismatch = def.ID != "" && prior.ID != "" && def.ID != prior.ID

	path := filepath.Join(dir, filepath.FromSlash(def.Config))
	if _, err := os.Stat(path); err != nil {
		st.State = StateMissingConfig
		st.Err = err
		return st
	}

	doc, err := ReadDocument(path)
	if err != nil {
		st.State = StateInvalidConfig
		st.Err = err
		return st
	}

	st.Hash = Fingerprint(doc)
	switch {
	case !hasPrior:
		st.State = StateNew
	case prior.Hash == st.Hash:
		st.State = StateSynced
	default:
		st.State = StateChanged
	}
	return st
}
