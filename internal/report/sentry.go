package report

import (
	"github.com/getsentry/sentry-go"
)

// FromSentryException converts a sentry-go exception into a Report. Frames
// keep sentry's ordering (outermost call first), which is what the graph
// builder expects.
//
// sentry's frame model cannot tell a zero value from an absent one, so zero
// values are treated as absent, matching its omitempty encoding. The same
// holds for in_app: false is indistinguishable from unset and is left absent.
func FromSentryException(ex sentry.Exception) Report {
	r := Report{Type: ex.Type, Value: ex.Value}
	if ex.Stacktrace == nil {
		return r
	}

	r.Stacktrace = &Stacktrace{Frames: make([]Frame, 0, len(ex.Stacktrace.Frames))}
	for _, sf := range ex.Stacktrace.Frames {
		r.Stacktrace.Frames = append(r.Stacktrace.Frames, fromSentryFrame(sf))
	}
	return r
}

// FromSentryEvent converts every exception value of an event.
func FromSentryEvent(ev *sentry.Event) []Report {
	if ev == nil || len(ev.Exception) == 0 {
		return nil
	}
	out := make([]Report, 0, len(ev.Exception))
	for _, ex := range ev.Exception {
		out = append(out, FromSentryException(ex))
	}
	return out
}

func fromSentryFrame(sf sentry.Frame) Frame {
	var f Frame
	if sf.Filename != "" {
		filename := sf.Filename
		f.Filename = &filename
	}
	if sf.Lineno != 0 {
		lineno := sf.Lineno
		f.Lineno = &lineno
	}
	if sf.Function != "" {
		function := sf.Function
		f.Function = &function
	}
	if sf.Module != "" {
		module := sf.Module
		f.Module = &module
	}
	if sf.InApp {
		inApp := true
		f.InApp = &inApp
	}

	extra := map[string]any{}
	for key, v := range map[string]string{
		"symbol":           sf.Symbol,
		"abs_path":         sf.AbsPath,
		"context_line":     sf.ContextLine,
		"package":          sf.Package,
		"instruction_addr": sf.InstructionAddr,
		"addr_mode":        sf.AddrMode,
		"symbol_addr":      sf.SymbolAddr,
		"image_addr":       sf.ImageAddr,
		"platform":         sf.Platform,
	} {
		if v != "" {
			extra[key] = v
		}
	}
	if sf.Colno != 0 {
		extra["colno"] = sf.Colno
	}
	if len(sf.PreContext) > 0 {
		extra["pre_context"] = sf.PreContext
	}
	if len(sf.PostContext) > 0 {
		extra["post_context"] = sf.PostContext
	}
	if len(sf.Vars) > 0 {
		extra["vars"] = sf.Vars
	}
	if sf.StackStart {
		extra["stack_start"] = true
	}
	if len(extra) > 0 {
		f.Extra = extra
	}
	return f
}
