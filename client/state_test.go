package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name            string
		progress        Progress
		hasCert         bool
		generatePending bool
		want            CourseState
	}{
		{"untouched course", Progress{TotalContent: 4}, false, false, StateNotStarted},
		{"partial progress", Progress{TotalContent: 4, CompletedContent: 2, ProgressPercentage: 50}, false, false, StateInProgress},
		{"complete, no certificate", Progress{TotalContent: 4, CompletedContent: 4, ProgressPercentage: 100, IsCompleted: true}, false, false, StateCompletedNoCert},
		{"complete, generate in flight", Progress{TotalContent: 4, CompletedContent: 4, ProgressPercentage: 100, IsCompleted: true}, false, true, StateCertGenerating},
		{"certificate issued", Progress{TotalContent: 4, CompletedContent: 4, ProgressPercentage: 100, IsCompleted: true}, true, false, StateCertReady},
		{"certificate wins over pending", Progress{IsCompleted: true}, true, true, StateCertReady},
		{"pending before completion is ignored", Progress{CompletedContent: 1}, false, true, StateInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveState(tt.progress, tt.hasCert, tt.generatePending))
		})
	}
}

func TestEligible(t *testing.T) {
	complete := Progress{CourseID: 3, TotalContent: 4, CompletedContent: 4, ProgressPercentage: 100, IsCompleted: true}
	partial := Progress{CourseID: 3, TotalContent: 4, CompletedContent: 3, ProgressPercentage: 75}

	require.True(t, Eligible(3, complete, nil))
	require.True(t, Eligible(3, complete, []uint{1, 2}))
	require.False(t, Eligible(3, partial, nil))
	require.False(t, Eligible(3, complete, []uint{3}), "issued and eligible are disjoint")
}

func TestCourseStateString(t *testing.T) {
	require.Equal(t, "NOT_STARTED", StateNotStarted.String())
	require.Equal(t, "CERT_READY", StateCertReady.String())
	require.Equal(t, "UNKNOWN", CourseState(99).String())
}
