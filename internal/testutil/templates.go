package testutil

import (
	"sync"
	"testing"

	"github.com/dalemusser/gamecenter/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var bootOnce sync.Once

// BootTemplates compiles the shared layout plus every template set registered
// by the packages linked into the test binary, and installs the engine for
// templates.Render. Safe to call from many tests.
func BootTemplates(t *testing.T) {
	t.Helper()
	var bootErr error
	bootOnce.Do(func() {
		resources.LoadSharedTemplates()
		eng := templates.New(false)
		if bootErr = eng.Boot(zap.NewNop()); bootErr != nil {
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	if bootErr != nil {
		t.Fatalf("boot templates: %v", bootErr)
	}
}
