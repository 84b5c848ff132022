package agent

import (
	"context"
	"errors"
	"testing"
)

func TestServiceLifecycle(t *testing.T) {
	svc := NewService()

	if svc.State() != StateUninitialized {
		t.Fatalf("state = %q, want uninitialized", svc.State())
	}
	if _, err := svc.Open(context.Background(), OpeningContext{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady before load, got %v", err)
	}

	svc.Load(func() (Oracle, error) {
		return &Scripted{Openings: []OpeningReply{{Decision: DecisionLeave, Spoken: "Just browsing."}}}, nil
	})

	if !svc.Ready() {
		t.Fatalf("state = %q, want ready", svc.State())
	}
	reply, err := svc.Open(context.Background(), OpeningContext{})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Decision != DecisionLeave {
		t.Errorf("decision = %q", reply.Decision)
	}
	if svc.Busy() {
		t.Error("in-flight flag should clear after the call returns")
	}
}

func TestServiceLoadFailure(t *testing.T) {
	svc := NewService()
	boom := errors.New("no network")

	svc.Load(func() (Oracle, error) { return nil, boom })

	if svc.State() != StateFailed {
		t.Fatalf("state = %q, want failed", svc.State())
	}
	if !errors.Is(svc.LoadError(), boom) {
		t.Errorf("load error = %v", svc.LoadError())
	}
	if _, err := svc.Counter(context.Background(), CounterContext{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady after failed load, got %v", err)
	}
}

func TestServiceLoadIsIdempotentOnceReady(t *testing.T) {
	svc := NewService()
	builds := 0

	build := func() (Oracle, error) {
		builds++
		return &Scripted{}, nil
	}
	svc.Load(build)
	svc.Load(build)

	if builds != 1 {
		t.Errorf("constructor ran %d times, want 1", builds)
	}
}

func TestServiceRejectsOverlappingCalls(t *testing.T) {
	svc := NewService()
	release := make(chan struct{})
	started := make(chan struct{})

	svc.Load(func() (Oracle, error) {
		return blockingOracle{started: started, release: release}, nil
	})

	go svc.Open(context.Background(), OpeningContext{})
	<-started

	if !svc.Busy() {
		t.Error("service should report busy during a call")
	}
	if _, err := svc.Counter(context.Background(), CounterContext{}); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	close(release)
}

type blockingOracle struct {
	started chan struct{}
	release chan struct{}
}

func (b blockingOracle) Open(context.Context, OpeningContext) (*OpeningReply, error) {
	close(b.started)
	<-b.release
	return &OpeningReply{Decision: DecisionLeave}, nil
}

func (b blockingOracle) Counter(context.Context, CounterContext) (*CounterReply, error) {
	return &CounterReply{Decision: DecisionReject}, nil
}
