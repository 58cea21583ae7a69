package replacer

import (
	"context"
	"strings"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for replacer events.
var (
	SignalPolicyCreated     = capitan.NewSignal("replacer.policy.created", "Policy instantiated")
	SignalTransformStart    = capitan.NewSignal("replacer.transform.start", "Transform operation beginning")
	SignalTransformComplete = capitan.NewSignal("replacer.transform.complete", "Transform operation finished")
	SignalPrintComplete     = capitan.NewSignal("replacer.print.complete", "Print operation finished")
	SignalMethodFailed      = capitan.NewSignal("replacer.method.failed", "Invoked method failed and was captured")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyMethod      = capitan.NewStringKey("method")
	KeyKeyStrategy = capitan.NewStringKey("strategy")
	KeyExcluded    = capitan.NewStringKey("excluded")
	KeyTargets     = capitan.NewStringKey("targets")
	KeyMethodCount = capitan.NewIntKey("method_count")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitPolicyCreated emits an event when a policy is created.
func emitPolicyCreated(ctx context.Context, p *Policy) {
	targets := make([]string, 0, len(p.targets))
	for _, t := range p.Targets() {
		targets = append(targets, string(t))
	}
	capitan.Emit(ctx, SignalPolicyCreated,
		KeyKeyStrategy.Field(string(p.strategy)),
		KeyExcluded.Field(strings.Join(p.ExcludedKeys(), ",")),
		KeyTargets.Field(strings.Join(targets, ",")),
		KeyMethodCount.Field(len(p.methods)),
	)
}

// emitTransformStart emits an event when a walk begins.
func emitTransformStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalTransformStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitTransformComplete emits an event when a walk and render finish.
func emitTransformComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalTransformComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalTransformComplete, fields...)
	}
}

// emitPrintComplete emits an event when a rendering is written out.
func emitPrintComplete(ctx context.Context, contentType, typeName string, size int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalPrintComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalPrintComplete, fields...)
	}
}

// emitMethodFailed emits an event when an invoked method fails.
// The failure itself is folded into the output, never returned.
func emitMethodFailed(ctx context.Context, typeName, method string, err error) {
	capitan.Error(ctx, SignalMethodFailed,
		KeyTypeName.Field(typeName),
		KeyMethod.Field(method),
		KeyError.Field(err),
	)
}
