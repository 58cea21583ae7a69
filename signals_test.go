package replacer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitPolicyCreated(_ *testing.T) {
	// Should not panic
	emitPolicyCreated(context.Background(), &Policy{strategy: KeysAll})
}

func TestEmitTransformStart(_ *testing.T) {
	emitTransformStart(context.Background(), "application/json", "TestType")
}

func TestEmitTransformComplete_Success(_ *testing.T) {
	emitTransformComplete(context.Background(), "application/json", "TestType", 128, 100*time.Millisecond, nil)
}

func TestEmitTransformComplete_Error(_ *testing.T) {
	emitTransformComplete(context.Background(), "application/json", "TestType", 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitPrintComplete_Success(_ *testing.T) {
	emitPrintComplete(context.Background(), "application/json", "TestType", 64, nil)
}

func TestEmitPrintComplete_Error(_ *testing.T) {
	emitPrintComplete(context.Background(), "application/json", "TestType", 0, errors.New("test error"))
}

func TestEmitMethodFailed(_ *testing.T) {
	emitMethodFailed(context.Background(), "TestType", "Explode", errors.New("kaboom"))
}

func TestSignalVariables(t *testing.T) {
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalPolicyCreated", SignalPolicyCreated},
		{"SignalTransformStart", SignalTransformStart},
		{"SignalTransformComplete", SignalTransformComplete},
		{"SignalPrintComplete", SignalPrintComplete},
		{"SignalMethodFailed", SignalMethodFailed},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyContentType", KeyContentType},
		{"KeyTypeName", KeyTypeName},
		{"KeyMethod", KeyMethod},
		{"KeyKeyStrategy", KeyKeyStrategy},
		{"KeyExcluded", KeyExcluded},
		{"KeyTargets", KeyTargets},
		{"KeyMethodCount", KeyMethodCount},
		{"KeySize", KeySize},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}

func TestKeyNames(t *testing.T) {
	if got := KeyKeyStrategy.Name(); got != "strategy" {
		t.Errorf("KeyKeyStrategy.Name() = %q, want %q", got, "strategy")
	}
	if got := KeyMethodCount.Name(); got != "method_count" {
		t.Errorf("KeyMethodCount.Name() = %q, want %q", got, "method_count")
	}
}
