package sqlc

import (
	"context"
	"log"
	"sync"

	"github.com/saeidalz13/submarine-duel/models/submarine"
)

const defaultJournalBuffer = 256

type journalEvent struct {
	start *submarine.MatchStart
	turn  *submarine.Snapshot
	end   *submarine.MatchEnd
}

// Journal writes match events from a single worker goroutine so the turn
// loop never waits on the database. Turns are dropped when the queue is
// full; the match start and end always get through.
type Journal struct {
	dm        DbManager
	events    chan journalEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewJournal(dm DbManager) *Journal {
	j := &Journal{
		dm:        dm,
		events:    make(chan journalEvent, defaultJournalBuffer),
		done:      make(chan struct{}),
	}
	go j.work()
	return j
}

var _ submarine.Observer = (*Journal)(nil)

func (j *Journal) ObserveStart(start submarine.MatchStart) {
	j.events <- journalEvent{start: &start}
}

func (j *Journal) ObserveTurn(snapshot submarine.Snapshot) {
	select {
	case j.events <- journalEvent{turn: &snapshot}:
	default:
		log.Printf("journal queue full, dropping turn %d of match %s", snapshot.Turn, snapshot.MatchID)
	}
}

func (j *Journal) ObserveEnd(end submarine.MatchEnd) {
	j.events <- journalEvent{end: &end}
}

// Close flushes the queued events and stops the worker. No Observe call
// may follow it.
func (j *Journal) Close() {
	j.closeOnce.Do(func() { close(j.events) })
	<-j.done
}

func (j *Journal) work() {
	defer close(j.done)

	for event := range j.events {
		if err := j.write(event); err != nil {
			log.Println("journal write failed:", err)
		}
	}
}

func (j *Journal) write(event journalEvent) error {
	ctx, cancel := j.dm.Context(context.Background())
	defer cancel()

	switch {
	case event.start != nil:
		return j.dm.Analytics.RecordMatch(ctx, *event.start)
	case event.turn != nil:
		return j.dm.Analytics.RecordTurn(ctx, *event.turn)
	case event.end != nil:
		return j.dm.Analytics.FinishMatch(ctx, *event.end)
	}
	return nil
}
