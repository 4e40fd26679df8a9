package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		eventDate time.Time
		want      int
	}{
		{"exactly one day", now.Add(24 * time.Hour), 1},
		{"just under one day", now.Add(24*time.Hour - time.Minute), 0},
		{"exactly seven days", now.Add(7 * 24 * time.Hour), 7},
		{"same instant", now, 0},
		{"in the past", now.Add(-36 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.eventDate, now))
		})
	}
}

func TestCanEdit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		eventDate time.Time
		want      bool
	}{
		{"exactly 24h out is allowed", now.Add(24 * time.Hour), true},
		{"23h59m out is blocked", now.Add(24*time.Hour - time.Minute), false},
		{"two days out", now.Add(48 * time.Hour), true},
		{"today", now.Add(2 * time.Hour), false},
		{"past event", now.Add(-24 * time.Hour), false},
		{"zero date fails closed", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(tt.eventDate, now))
		})
	}
}

func TestCanDelete(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		eventDate time.Time
		want      bool
	}{
		{"exactly 7 days out is allowed", now.Add(7 * 24 * time.Hour), true},
		{"six days out is blocked", now.Add(6 * 24 * time.Hour), false},
		{"eight days out", now.Add(8 * 24 * time.Hour), true},
		{"just under 7 days", now.Add(7*24*time.Hour - time.Second), false},
		{"zero date fails closed", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.eventDate, now))
		})
	}
}

// Six days out: edit still open, delete already closed
func TestEditDeleteWindowsDiverge(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	eventDate := now.Add(6 * 24 * time.Hour)

	assert.True(t, CanEdit(eventDate, now))
	assert.False(t, CanDelete(eventDate, now))
}
