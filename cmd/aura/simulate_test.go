package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/Hean-Yi/Aura/pkg/mood"
	"github.com/Hean-Yi/Aura/pkg/session"
)

func newSession() *session.Session {
	return session.New(session.DefaultConfig(), sessionOptions(42)...)
}

func TestLookupScenario(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"calm", false},
		{"anger", false},
		{"scribble", false},
		{"sleepy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := lookupScenario(tt.name, rand.New(rand.NewPCG(1, 2)))
			if (err != nil) != tt.wantErr {
				t.Fatalf("lookupScenario() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(sc) == 0 {
				t.Error("Expected a non-empty scenario")
			}
		})
	}
}

func TestScenarioNamesSorted(t *testing.T) {
	got := strings.Join(scenarioNames(), ",")
	if got != "anger,calm,scribble" {
		t.Errorf("Expected anger,calm,scribble, got %s", got)
	}
}

func TestReplayCalm(t *testing.T) {
	res, err := replay(context.Background(), newSession(), calmScenario(), 60, nil)
	if err != nil {
		t.Fatalf("replay() error = %v", err)
	}
	if res.Final != mood.Calm {
		t.Errorf("Expected calm, got %s", res.Final)
	}
	if res.Offered {
		t.Error("Expected no breathing offer for calm")
	}
	if res.Ticks == 0 {
		t.Error("Expected ticks")
	}
	if res.Entry.Summary.TotalPoints == 0 {
		t.Error("Expected points in the entry summary")
	}
}

func TestReplayAnger(t *testing.T) {
	res, err := replay(context.Background(), newSession(), angerScenario(), 60, nil)
	if err != nil {
		t.Fatalf("replay() error = %v", err)
	}
	if res.Final != mood.Anger {
		t.Errorf("Expected anger, got %s", res.Final)
	}
	if !res.Offered {
		t.Error("Expected breathing to be offered")
	}
	if len(res.Changes) == 0 || res.Changes[len(res.Changes)-1].Mood != mood.Anger {
		t.Errorf("Expected the timeline to end in anger, got %+v", res.Changes)
	}
}

func TestReplayAngerWithBreathing(t *testing.T) {
	cfg := session.DefaultConfig().Breathing
	s := newSession()
	res, err := replay(context.Background(), s, angerScenario(), 60, &cfg)
	if err != nil {
		t.Fatalf("replay() error = %v", err)
	}
	if res.Final != mood.Calm {
		t.Errorf("Expected calm after breathing, got %s", res.Final)
	}
	if s.Breathing().Phase.String() != "done" {
		t.Errorf("Expected breathing done, got %s", s.Breathing().Phase)
	}
	if n := len(res.Changes); n == 0 || res.Changes[n-1].Mood != mood.Calm {
		t.Errorf("Expected the timeline to end in calm, got %+v", res.Changes)
	}
}

func TestReplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := replay(ctx, newSession(), calmScenario(), 60, nil); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestRunSimulateOutput(t *testing.T) {
	var out bytes.Buffer
	err := runSimulate(context.Background(), &out, simulateOptions{
		scenario:  "anger",
		fps:       30,
		seed:      7,
		showEntry: true,
	})
	if err != nil {
		t.Fatalf("runSimulate() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"scenario anger", "final mood: Anger", "breathing offered", `"dominant_mood": "anger"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestRunSimulateUnknown(t *testing.T) {
	var out bytes.Buffer
	if err := runSimulate(context.Background(), &out, simulateOptions{scenario: "nope", seed: 1}); err == nil {
		t.Error("Expected error for unknown scenario")
	}
}
