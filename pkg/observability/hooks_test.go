package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnLayoutStart(ctx, 1, 10)
	l.OnLayoutComplete(ctx, 1, 9, 1, time.Millisecond, nil)
	l.OnLayoutDiscarded(ctx, 1, 2)

	s := NoopStoreHooks{}
	s.OnLoad(ctx, SourcePrimary, 43)
	s.OnCorrupt(ctx, "video-wcloud-words", errors.New("bad"))
	s.OnSave(ctx, "video-wcloud-words", 512, time.Millisecond, nil)

	c := NoopCommandHooks{}
	c.OnCommand(ctx, "add", "Alpha", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Command().(NoopCommandHooks); !ok {
		t.Error("Command() should return NoopCommandHooks by default")
	}

	custom := &testHooks{}
	SetLayoutHooks(custom)
	SetStoreHooks(custom)
	SetCommandHooks(custom)
	if Layout() != custom || Store() != custom || Command() != custom {
		t.Error("Set*Hooks should install custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testHooks{}
	SetStoreHooks(custom)
	SetStoreHooks(nil)
	if Store() != custom {
		t.Error("SetStoreHooks(nil) should keep the previous hooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Install()

	ctx := context.Background()
	Layout().OnLayoutComplete(ctx, 3, 10, 2, time.Millisecond, nil)
	Store().OnCorrupt(ctx, "wcloud-words", errors.New("not an array"))
	Command().OnCommand(ctx, "add", "Beta", nil)

	out := buf.String()
	for _, want := range []string{"layout done", "unplaced=2", "stored words corrupt", "label=Beta"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testHooks struct {
	NoopLayoutHooks
	NoopStoreHooks
	NoopCommandHooks
}
