package common

import (
	"net/http"
	"reflect"
	"testing"
	"time"

	"panduankota/backend/internal/constants"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{" foo, bar ,, baz", []string{"foo", "bar", "baz"}},
		{"", nil},
		{" , ,", nil},
		{"satu", []string{"satu"}},
		{"koridor 1, koridor 13", []string{"koridor 1", "koridor 13"}},
	}
	for _, tt := range tests {
		got := NormalizeTags(tt.raw)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NormalizeTags(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestIsPermanentMute(t *testing.T) {
	if IsPermanentMute(nil) {
		t.Error("nil deadline is not a permanent mute")
	}

	soon := time.Now().Add(24 * time.Hour)
	if IsPermanentMute(&soon) {
		t.Error("a near-term deadline is not permanent")
	}

	sentinel := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if !IsPermanentMute(&sentinel) {
		t.Error("the far-future sentinel must read as permanent")
	}
}

func TestReasonStatus(t *testing.T) {
	tests := []struct {
		reason string
		want   int
	}{
		{constants.ReasonForbidden, http.StatusForbidden},
		{constants.ReasonUnauthorized, http.StatusUnauthorized},
		{constants.ReasonInvalidLogin, http.StatusUnauthorized},
		{constants.ReasonBlocked, http.StatusUnauthorized},
		{constants.ReasonNotFound, http.StatusNotFound},
		{constants.ReasonStoreFailure, http.StatusInternalServerError},
		{constants.ReasonMuted, http.StatusBadRequest},
		{constants.ReasonStepsRequired, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := ReasonStatus(tt.reason); got != tt.want {
			t.Errorf("ReasonStatus(%s) = %d, want %d", tt.reason, got, tt.want)
		}
	}
}
