package service

import (
	"context"
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "0 0 8 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "7:05", want: "0 5 7 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12:00:00", wantErr: true},
	}
	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("buildDailySpec(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSchedulerRegistersJobs(t *testing.T) {
	t.Parallel()

	s := NewSchedulerService(time.UTC, 0)
	noop := func(context.Context) error { return nil }

	if _, err := s.ScheduleDaily("digest", "08:30", noop); err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}
	if _, err := s.ScheduleInterval("sweep", time.Hour, noop); err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}
	if _, err := s.ScheduleDaily("bad", "25:00", noop); err == nil {
		t.Fatal("expected invalid daily time to be rejected")
	}
	if _, err := s.ScheduleInterval("bad", 0, noop); err == nil {
		t.Fatal("expected zero interval to be rejected")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestSchedulerRunsIntervalJobs(t *testing.T) {
	t.Parallel()

	s := NewSchedulerService(time.UTC, time.Second)
	ran := make(chan struct{}, 1)
	if _, err := s.ScheduleInterval("tick", time.Second, func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("job context should carry a deadline")
		}
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}); err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("interval job did not run")
	}
}
