package state

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
)

// Config carries the dependencies a Store needs. Every field is optional:
// a zero Config yields an empty state, the wall clock, UUIDv7 identifiers
// and a no-op logger.
type Config struct {
	Initial    model.AppState
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
}

// Store owns the single authoritative AppState and serializes every
// transition through Dispatch.
type Store struct {
	mutex      sync.Mutex
	state      model.AppState
	clock      func() time.Time
	idProvider IDProvider
	logger     *zap.Logger
}

// New builds a Store from the supplied configuration.
func New(storeConfig Config) *Store {
	clock := storeConfig.Clock
	if clock == nil {
		clock = time.Now
	}
	idProvider := storeConfig.IDProvider
	if idProvider == nil {
		idProvider = UUIDProvider{}
	}
	logger := storeConfig.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:      storeConfig.Initial.Clone(),
		clock:      clock,
		idProvider: idProvider,
		logger:     logger,
	}
}

// Dispatch applies one action to the current state. Dispatch never fails:
// actions that match nothing leave the state untouched.
func (store *Store) Dispatch(action Action) {
	if action == nil {
		return
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	dispatchStamp := Stamp{
		Now:   store.clock().UnixMilli(),
		NewID: store.nextID,
	}
	store.state = Apply(store.state, action, dispatchStamp)
	store.logger.Debug("action dispatched", zap.String("action", action.Name()))
}

// State returns a deep copy of the current state. Callers may retain and
// mutate the copy freely.
func (store *Store) State() model.AppState {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.state.Clone()
}

func (store *Store) nextID() string {
	generatedID, idError := store.idProvider.NewID()
	if idError != nil {
		store.logger.Error("id generation failed", zap.Error(idError))
		return fmt.Sprintf("fallback-%d", store.clock().UnixNano())
	}
	return generatedID
}
