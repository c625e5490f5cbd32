package engine

import (
	"testing"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

func flag(id string, severity model.Severity, createdAt time.Time) *model.RedFlag {
	return &model.RedFlag{
		ID:        id,
		Type:      model.FlagDeadline,
		Severity:  severity,
		CreatedAt: createdAt,
		Related:   model.RelatedEntity{Type: model.EntitySubtask, ID: id, Name: id},
	}
}

func TestMergeFlags_OrdersBySeverityThenRecency(t *testing.T) {
	older := testNow.Add(-2 * time.Hour)
	newer := testNow.Add(-1 * time.Hour)

	merged := MergeFlags(
		[]*model.RedFlag{flag("m-old", model.SeverityMedium, older)},
		[]*model.RedFlag{flag("c-old", model.SeverityCritical, older), flag("h-new", model.SeverityHigh, newer)},
		[]*model.RedFlag{flag("c-new", model.SeverityCritical, newer), flag("h-old", model.SeverityHigh, older)},
	)

	want := []string{"c-new", "c-old", "h-new", "h-old", "m-old"}
	if len(merged) != len(want) {
		t.Fatalf("got %d flags, want %d", len(merged), len(want))
	}
	for i, id := range want {
		if merged[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, merged[i].ID, id)
		}
	}
}

func TestMergeFlags_NoLowerRankPrecedesHigher(t *testing.T) {
	merged := MergeFlags(
		[]*model.RedFlag{
			flag("a", model.SeverityMedium, testNow),
			flag("b", model.SeverityCritical, testNow.Add(-time.Hour)),
			flag("c", model.SeverityHigh, testNow),
			flag("d", model.SeverityCritical, testNow),
			flag("e", model.SeverityMedium, testNow.Add(time.Hour)),
		},
	)

	for i := 1; i < len(merged); i++ {
		if merged[i].Severity.Rank() > merged[i-1].Severity.Rank() {
			t.Fatalf("flag %q (rank %d) precedes %q (rank %d)",
				merged[i-1].ID, merged[i-1].Severity.Rank(),
				merged[i].ID, merged[i].Severity.Rank())
		}
	}
}

func TestMergeFlags_StableWithinTies(t *testing.T) {
	a := flag("first", model.SeverityHigh, testNow)
	b := flag("second", model.SeverityHigh, testNow)

	merged := MergeFlags([]*model.RedFlag{a}, []*model.RedFlag{b})
	if merged[0].ID != "first" || merged[1].ID != "second" {
		t.Errorf("tie order not preserved: got %q, %q", merged[0].ID, merged[1].ID)
	}
}

func TestMergeFlags_EmptyInput(t *testing.T) {
	merged := MergeFlags()
	if merged == nil {
		t.Fatal("MergeFlags() = nil, want empty slice")
	}
	if len(merged) != 0 {
		t.Fatalf("got %d flags, want 0", len(merged))
	}
}
