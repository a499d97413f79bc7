package glint

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"testing"
)

// Top-level functions so callableName sees real declared identities.

func addAmounts(a, b int) (int, error) {
	return a + b, nil
}

var errDecode = errors.New("truncated payload")

type decodeError struct{ offset int }

func (e *decodeError) Error() string {
	return "bad byte at offset " + strconv.Itoa(e.offset)
}

func decodeFail(raw []byte) (int, error) {
	return 0, &decodeError{offset: len(raw)}
}

func alwaysPanic(n int) (int, error) {
	panic("unreachable slot " + strconv.Itoa(n))
}

func fetchWithCtx(ctx context.Context, addr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "pool:" + addr, nil
}

func divide(ctx context.Context, a, b int) (int, error) {
	if b == 0 {
		return 0, errDecode
	}
	return a / b, nil
}

// events reads back the instrumentation records from buf.
func events(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	return jsonLines(t, buf)
}

func TestInstrument2_Success(t *testing.T) {
	var buf bytes.Buffer
	Configure(captureConfig("debug", "json", &buf))

	wrapped := Instrument2(addAmounts)
	got, err := wrapped(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}

	recs := events(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("expected called+completed, got %d records", len(recs))
	}

	called, completed := recs[0], recs[1]
	if called["event"] != "called" {
		t.Errorf("first event should be 'called', got %v", called["event"])
	}
	if called["function"] != "addAmounts" {
		t.Errorf("expected function 'addAmounts', got %v", called["function"])
	}
	if called["args_count"] != float64(2) {
		t.Errorf("expected args_count 2, got %v", called["args_count"])
	}
	if called["logger"] != "glint" {
		t.Errorf("expected handle named after the originating package, got %v", called["logger"])
	}

	if completed["event"] != "completed" {
		t.Errorf("second event should be 'completed', got %v", completed["event"])
	}
	if completed["success"] != true {
		t.Errorf("expected success true, got %v", completed["success"])
	}
}

func TestInstrument_FailurePath(t *testing.T) {
	var buf bytes.Buffer
	Configure(captureConfig("debug", "json", &buf))

	wrapped := Instrument(decodeFail)
	_, err := wrapped([]byte{1, 2})

	var de *decodeError
	if !errors.As(err, &de) || de.offset != 2 {
		t.Fatalf("wrapper must re-raise the identical error, got %v", err)
	}

	recs := events(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("expected called+failed, got %d records", len(recs))
	}
	for _, rec := range recs {
		if rec["event"] == "completed" {
			t.Fatal("failing call must not emit a completed event")
		}
	}

	failed := recs[1]
	if failed["event"] != "failed" {
		t.Fatalf("expected 'failed' event, got %v", failed["event"])
	}
	if failed["level"] != "error" {
		t.Errorf("failed events are error-level, got %v", failed["level"])
	}
	if failed["error"] != "bad byte at offset 2" {
		t.Errorf("expected original error message, got %v", failed["error"])
	}
	if failed["error_type"] != "*glint.decodeError" {
		t.Errorf("expected distinguishable error kind, got %v", failed["error_type"])
	}
}

func TestInstrument_PanicObservedAndReraised(t *testing.T) {
	var buf bytes.Buffer
	Configure(captureConfig("debug", "json", &buf))

	wrapped := Instrument(alwaysPanic)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("wrapper must re-raise the panic")
		}
		if r != "unreachable slot 7" {
			t.Fatalf("panic value must be unchanged, got %v", r)
		}

		recs := events(t, &buf)
		if len(recs) != 2 || recs[1]["event"] != "failed" {
			t.Fatalf("expected called+failed before the panic propagates, got %v", recs)
		}
	}()

	_, _ = wrapped(7)
}

func TestInstrumentCtx_Success(t *testing.T) {
	var buf bytes.Buffer
	Configure(captureConfig("debug", "json", &buf))

	wrapped := InstrumentCtx(fetchWithCtx)
	got, err := wrapped(context.Background(), "8sLbN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "pool:8sLbN" {
		t.Fatalf("wrapper changed the return value: %q", got)
	}

	recs := events(t, &buf)
	if len(recs) != 2 || recs[0]["event"] != "called" || recs[1]["event"] != "completed" {
		t.Fatalf("expected called then completed, got %v", recs)
	}
	if recs[0]["args_count"] != float64(1) {
		t.Errorf("context parameter must not count as an argument, got %v", recs[0]["args_count"])
	}
}

func TestInstrumentCtx_CancellationIsObserved(t *testing.T) {
	var buf bytes.Buffer
	Configure(captureConfig("debug", "json", &buf))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wrapped := InstrumentCtx(fetchWithCtx)
	_, err := wrapped(ctx, "8sLbN")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancellation must propagate unchanged, got %v", err)
	}

	recs := events(t, &buf)
	failed := recs[len(recs)-1]
	if failed["event"] != "failed" {
		t.Fatalf("cancellation is a failure path, expected 'failed' event, got %v", failed)
	}
	if failed["error_type"] != "context.Canceled" {
		t.Errorf("expected stable cancellation kind, got %v", failed["error_type"])
	}
}

func TestInstrumentCtx2_ErrorIdentity(t *testing.T) {
	var buf bytes.Buffer
	Configure(captureConfig("debug", "json", &buf))

	wrapped := InstrumentCtx2(divide)

	if q, err := wrapped(context.Background(), 10, 2); err != nil || q != 5 {
		t.Fatalf("expected 5, got %d (%v)", q, err)
	}

	_, err := wrapped(context.Background(), 1, 0)
	if err != errDecode {
		t.Fatalf("wrapper must return the identical error value, got %v", err)
	}
}

func TestCallableName(t *testing.T) {
	component, name := callableName(addAmounts)
	if component != "glint" {
		t.Errorf("expected component 'glint', got %q", component)
	}
	if name != "addAmounts" {
		t.Errorf("expected name 'addAmounts', got %q", name)
	}

	component, name = callableName(42)
	if component != "instrument" || name != "anonymous" {
		t.Errorf("non-func values get placeholder identity, got %q.%q", component, name)
	}
}

func TestInstrument_FilteredWhenBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	// called/completed are debug events; at info they are filtered while
	// the wrapped call still runs.
	Configure(captureConfig("info", "json", &buf))

	wrapped := Instrument2(addAmounts)
	got, err := wrapped(2, 3)
	if err != nil || got != 5 {
		t.Fatalf("wrapped call must be unaffected by filtering, got %d (%v)", got, err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no records at info level, got %q", buf.String())
	}
}
