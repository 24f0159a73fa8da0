package api

import (
	"time"

	"github.com/pwslcc24-hash/Sleepr/internal"
	"github.com/pwslcc24-hash/Sleepr/internal/store"
)

type App interface {
	Logger() internal.Logger
	Store() *store.Store
	Now() time.Time
}

// Application is the default App wiring used by cmd and tests.
type Application struct {
	Log   internal.Logger
	Data  *store.Store
	Clock func() time.Time
}

func (a *Application) Logger() internal.Logger { return a.Log }
func (a *Application) Store() *store.Store     { return a.Data }

func (a *Application) Now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}
