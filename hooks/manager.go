// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package hooks runs per-stage validation and transformation over messages.
//
// Every stage has a built-in default behavior that always runs first and
// cannot be removed. Custom hooks run after it in the order they were added.
// The first error stops the stage.
package hooks

import (
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/math/set"
	"go.uber.org/zap"

	"github.com/luxfi/crosschain"
)

// DefaultHookName is reported in HookError when a stage default rejects.
const DefaultHookName = "default"

// Hook inspects or mutates a message at one stage of the pipeline.
type Hook interface {
	Execute(msg *crosschain.Message, source, destination crosschain.ChainID) error
}

// HookFunc adapts a plain function to Hook.
type HookFunc func(msg *crosschain.Message, source, destination crosschain.ChainID) error

func (f HookFunc) Execute(msg *crosschain.Message, source, destination crosschain.ChainID) error {
	return f(msg, source, destination)
}

// Named is implemented by hooks that report a name in errors.
type Named interface {
	Name() string
}

type namedHook struct {
	Hook
	name string
}

func (h namedHook) Name() string { return h.name }

// WithName gives h a name for error reports.
func WithName(name string, h Hook) Hook {
	return namedHook{Hook: h, name: name}
}

func nameOf(h Hook) string {
	if n, ok := h.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}

// Config parameterizes the stage defaults.
type Config struct {
	// SupportedChains is the destination set PreDispatch accepts.
	SupportedChains []crosschain.ChainID
	// MaxMessageAge is the oldest message PreExecution accepts.
	MaxMessageAge time.Duration
	Now           func() time.Time
}

// DefaultConfig returns the defaults used in production.
func DefaultConfig() Config {
	return Config{
		SupportedChains: []crosschain.ChainID{crosschain.ChainSolana, crosschain.ChainEthereum},
		MaxMessageAge:   crosschain.MaxMessageAge,
		Now:             time.Now,
	}
}

// Manager holds the hook lists for every stage.
type Manager struct {
	mu    sync.RWMutex
	hooks map[crosschain.HookType][]Hook

	defaults  map[crosschain.HookType]Hook
	supported set.Set[crosschain.ChainID]
	maxAge    time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// NewManager creates a manager with only the stage defaults installed.
func NewManager(log *zap.Logger, cfg Config) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxMessageAge == 0 {
		cfg.MaxMessageAge = crosschain.MaxMessageAge
	}
	m := &Manager{
		hooks:     make(map[crosschain.HookType][]Hook),
		supported: set.NewSet[crosschain.ChainID](len(cfg.SupportedChains)),
		maxAge:    cfg.MaxMessageAge,
		now:       cfg.Now,
		log:       log,
	}
	m.supported.Add(cfg.SupportedChains...)
	m.defaults = map[crosschain.HookType]Hook{
		crosschain.PreDispatch:   HookFunc(m.preDispatch),
		crosschain.PostDispatch:  HookFunc(m.postDispatch),
		crosschain.PreExecution:  HookFunc(m.preExecution),
		crosschain.PostExecution: HookFunc(m.postExecution),
	}
	return m
}

// Add appends hook to the stage's custom list.
func (m *Manager) Add(stage crosschain.HookType, hook Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks[stage] = append(m.hooks[stage], hook)
	m.log.Debug("hook added",
		zap.Stringer("stage", stage),
		zap.String("hook", nameOf(hook)),
		zap.Int("position", len(m.hooks[stage])-1),
	)
}

// Remove deletes the custom hook at index, shifting later hooks down.
func (m *Manager) Remove(stage crosschain.HookType, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.hooks[stage]
	if !ok {
		return fmt.Errorf("%w: %s", crosschain.ErrHookStageNotFound, stage)
	}
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: index %d, %s has %d hooks", crosschain.ErrHookIndexOutOfBounds, index, stage, len(list))
	}
	next := make([]Hook, 0, len(list)-1)
	next = append(next, list[:index]...)
	m.hooks[stage] = append(next, list[index+1:]...)
	return nil
}

// Clear drops every custom hook of the stage. The stage default stays. A
// stage that never had hooks is left untouched.
func (m *Manager) Clear(stage crosschain.HookType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hooks[stage]; ok {
		m.hooks[stage] = []Hook{}
	}
}

// Len returns the number of custom hooks registered for stage.
func (m *Manager) Len(stage crosschain.HookType) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.hooks[stage])
}

// Stages returns the stages that have at least one custom hook, in pipeline
// order.
func (m *Manager) Stages() []crosschain.HookType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stages []crosschain.HookType
	for _, stage := range crosschain.HookTypes {
		if len(m.hooks[stage]) > 0 {
			stages = append(stages, stage)
		}
	}
	return stages
}

// Execute runs the stage default and then every custom hook in order,
// stopping at the first error.
func (m *Manager) Execute(stage crosschain.HookType, msg *crosschain.Message, source, destination crosschain.ChainID) error {
	def, ok := m.defaults[stage]
	if !ok {
		return fmt.Errorf("%w: %s", crosschain.ErrHookStageNotFound, stage)
	}

	m.mu.RLock()
	custom := make([]Hook, len(m.hooks[stage]))
	copy(custom, m.hooks[stage])
	m.mu.RUnlock()

	if err := def.Execute(msg, source, destination); err != nil {
		return &crosschain.HookError{Stage: stage, Hook: DefaultHookName, Err: err}
	}
	for _, hook := range custom {
		if err := hook.Execute(msg, source, destination); err != nil {
			return &crosschain.HookError{Stage: stage, Hook: nameOf(hook), Err: err}
		}
	}
	return nil
}
