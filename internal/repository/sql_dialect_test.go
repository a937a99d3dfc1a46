package repository

import "testing"

func TestCaseInsensitiveLikeConditionSQLite(t *testing.T) {
	got := caseInsensitiveLikeCondition(nil, "title")
	want := "LOWER(title) LIKE ?"
	if got != want {
		t.Fatalf("sqlite like condition mismatch, want %s got %s", want, got)
	}
}

func TestDBDialectNameDefault(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db should default to sqlite, got %s", got)
	}
}
