package ai

import (
	"sort"
	"sync"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/rotisserie/eris"
)

// Tag classifies a strategy.
type Tag string

const (
	TagExperimental    Tag = "Experimental"
	TagCompetitive     Tag = "Competitive"
	TagLearningAI      Tag = "LearningAI"
	TagResearch        Tag = "Research"
	TagOfflineLearning Tag = "OfflineLearning"
	TagTeaching        Tag = "Teaching"
	TagTutorial        Tag = "Tutorial"
)

// Metadata describes a strategy in the lobby.
type Metadata struct {
	Key         string      `json:"key" yaml:"key"`
	Name        string      `json:"name" yaml:"name"`
	Author      string      `json:"author" yaml:"author"`
	Affinity    types.Color `json:"affinity" yaml:"affinity"`
	Description string      `json:"description" yaml:"description"`
	Tag         Tag         `json:"tag" yaml:"tag"`
	Version     string      `json:"version" yaml:"version"`
	Date        string      `json:"date" yaml:"date"`
}

// Strategy creates behaviours for AI players.
type Strategy interface {
	Metadata() Metadata
	Attach(handle *Handle) (Behaviour, error)
}

type strategy struct {
	metadata Metadata
	attach   func(handle *Handle) (Behaviour, error)
}

// NewStrategy builds a Strategy from its metadata and a constructor.
func NewStrategy(metadata Metadata, attach func(handle *Handle) (Behaviour, error)) Strategy {
	return &strategy{metadata: metadata, attach: attach}
}

func (s *strategy) Metadata() Metadata {
	return s.metadata
}

func (s *strategy) Attach(handle *Handle) (Behaviour, error) {
	return s.attach(handle)
}

var (
	ErrStrategyExists   = eris.New("strategy already registered")
	ErrStrategyNotFound = eris.New("strategy not found")
)

// Registry holds the strategies AI players can be created from.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds s under its metadata key.
func (r *Registry) Register(s Strategy) error {
	key := s.Metadata().Key
	if key == "" {
		return eris.New("strategy key must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.strategies[key]; ok {
		return eris.Wrapf(ErrStrategyExists, "key %s", key)
	}
	r.strategies[key] = s
	log.Debug("Registered AI strategy %s", key)
	return nil
}

// Lookup returns the strategy registered under key.
func (r *Registry) Lookup(key string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[key]
	if !ok {
		return nil, eris.Wrapf(ErrStrategyNotFound, "key %s", key)
	}
	return s, nil
}

// List returns the metadata of every strategy ordered by key.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Metadata, 0, len(r.strategies))
	for _, s := range r.strategies {
		list = append(list, s.Metadata())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}
