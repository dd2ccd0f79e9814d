package enginemem

import (
	"sort"

	"github.com/vk/uebridge/internal/engine"
)

// --- LevelOps ---

// SaveLevel marks the level clean.
func (e *Engine) SaveLevel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = true
	return nil
}

// ProjectInfo returns the host project identity.
func (e *Engine) ProjectInfo() (engine.ProjectInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project, nil
}

// OutlinerFolders maps World Outliner folders to the actor labels they hold.
func (e *Engine) OutlinerFolders() (map[string][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	folders := make(map[string][]string)
	for name, st := range e.actors {
		folders[st.ref.Folder] = append(folders[st.ref.Folder], name)
	}
	for _, names := range folders {
		sort.Strings(names)
	}
	return folders, nil
}

// --- SystemInfo ---

// EngineVersion returns the host engine version string.
func (e *Engine) EngineVersion() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project.EngineVersion
}

// LogTail returns up to lines of the most recent host log output.
func (e *Engine) LogTail(lines int) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if lines <= 0 || lines >= len(e.logs) {
		return append([]string(nil), e.logs...), nil
	}
	return append([]string(nil), e.logs[len(e.logs)-lines:]...), nil
}
