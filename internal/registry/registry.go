// Package registry holds the scene factories and the per-session manager
// of live scenes. Scenes register themselves in init() functions, so the
// platform can build a session without knowing the concrete scene types.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/stardrop/internal/scene"
)

// Factory creates a new scene instance.
type Factory func() scene.Scene

// SceneInfo describes a registered scene.
type SceneInfo struct {
	Key string
}

var (
	factories = make(map[string]Factory)
	order     []string
	mu        sync.RWMutex
)

// Register adds a scene factory. Typically called from init().
// Panics if the key is already registered.
func Register(key string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[key]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", key))
	}
	factories[key] = f
	order = append(order, key)
}

// List returns the registered scenes in registration order.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(order))
	for _, key := range order {
		result = append(result, SceneInfo{Key: key})
	}
	return result
}

// Create instantiates a scene by key.
func Create(key string) (scene.Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", key)
	}
	return f(), nil
}

// Exists checks whether a scene key is registered.
func Exists(key string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[key]
	return ok
}
