package events

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemorySink_RecordAndRecent(t *testing.T) {
	sink := NewMemorySink()

	sink.Record(NewEntry(NeedCreated, "first"))
	sink.Record(NewEntry(NeedCreated, "second"))
	sink.Record(NewEntry(SupplyCreated, "third"))

	recent := sink.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Message != "third" || recent[1].Message != "second" {
		t.Fatalf("expected newest-first order, got %+v", recent)
	}
}

func TestMemorySink_ByType(t *testing.T) {
	sink := NewMemorySink()
	sink.Record(NewEntry(NeedCreated, "a need"))
	sink.Record(NewEntry(SupplyCreated, "a supply"))
	sink.Record(NewEntry(NeedCreated, "another need"))

	byType := sink.ByType(NeedCreated)
	if len(byType) != 2 {
		t.Fatalf("expected 2 need.created entries, got %d", len(byType))
	}
}

func TestMemorySink_ByTimeRange(t *testing.T) {
	sink := NewMemorySink()
	now := time.Now()

	old := NewEntry(NeedCreated, "old")
	old.Timestamp = now.Add(-48 * time.Hour)
	recentEntry := NewEntry(NeedCreated, "recent")
	recentEntry.Timestamp = now

	sink.Record(old)
	sink.Record(recentEntry)

	out := sink.ByTimeRange(now.Add(-time.Hour), now.Add(time.Hour))
	if len(out) != 1 || out[0].Message != "recent" {
		t.Fatalf("expected only the recent entry, got %+v", out)
	}
}

func TestMemorySink_CapacityBoundsRingBuffer(t *testing.T) {
	sink := NewMemorySink()
	sink.capacity = 3

	for i := 0; i < 5; i++ {
		sink.Record(NewEntry(NeedCreated, "entry"))
	}

	if len(sink.Recent(10)) != 3 {
		t.Fatalf("expected ring buffer bounded to capacity 3, got %d", len(sink.Recent(10)))
	}
}

func TestMemorySink_ObserversNotifiedSynchronously(t *testing.T) {
	sink := NewMemorySink()

	var logged []Entry
	var paniced [][]uuid.UUID

	sink.AddObserver(observerFuncs{
		onLog: func(e Entry) { logged = append(logged, e) },
	})

	sink.Record(NewEntry(NeedCreated, "observed"))
	if len(logged) != 1 {
		t.Fatalf("expected observer notified once, got %d", len(logged))
	}

	sink.NotifyPanicModeTriggered(nil)
	_ = paniced
}

func TestMemorySink_AppendsToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	sink := NewMemorySinkWithFile(path)
	sink.Record(NewEntry(NeedCreated, "persisted"))
	sink.file.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected a file at %q: %v", path, err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty JSONL output")
	}
}

func TestMemorySink_PanickingObserverOnLogAddedIsRecoveredAndLogsSystemAlert(t *testing.T) {
	sink := NewMemorySink()
	sink.AddObserver(observerFuncs{
		onLog: func(e Entry) { panic("boom") },
	})

	sink.Record(NewEntry(NeedCreated, "triggers a panicking observer"))

	alerts := sink.ByType(SystemAlert)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one SystemAlert entry after the panic was recovered, got %d", len(alerts))
	}
}

func TestMemorySink_PanickingObserverOnPanicModeTriggeredIsRecoveredAndLogsSystemAlert(t *testing.T) {
	sink := NewMemorySink()
	sink.AddObserver(observerFuncs{
		onPanic: func(ids []uuid.UUID) { panic("boom") },
	})

	sink.NotifyPanicModeTriggered([]uuid.UUID{uuid.New()})

	alerts := sink.ByType(SystemAlert)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one SystemAlert entry after the panic was recovered, got %d", len(alerts))
	}
}

type observerFuncs struct {
	onLog   func(Entry)
	onPanic func([]uuid.UUID)
}

func (o observerFuncs) OnLogAdded(e Entry) {
	if o.onLog != nil {
		o.onLog(e)
	}
}

func (o observerFuncs) OnPanicModeTriggered(ids []uuid.UUID) {
	if o.onPanic != nil {
		o.onPanic(ids)
	}
}
