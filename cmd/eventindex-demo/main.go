// Command eventindex-demo wires a fresh Index and AdmissionEngine together
// and drives a small scripted sequence of events through them, to exercise
// the library end to end outside of the test suite.
package main

import (
	"context"
	"os"
	"runtime"

	"eventindex.orly.dev/internal/config"
	"eventindex.orly.dev/pkg/event"
	"eventindex.orly.dev/pkg/index"
	"eventindex.orly.dev/pkg/kind"
	"eventindex.orly.dev/pkg/tag"
	"lol.mleku.dev/chk"
	"lol.mleku.dev/log"
	"lukechampine.com/frand"
)

func main() {
	cfg, err := config.New()
	if chk.E(err) {
		os.Exit(1)
	}
	log.I.F("starting eventindex-demo")

	var opts []index.Option
	if cfg.Workers > 0 {
		opts = append(opts, index.WithWorkers(cfg.Workers))
	}
	idx := index.New(opts...)
	ae := index.NewAdmissionEngine(idx)
	ctx := context.Background()

	author := frand.Bytes(32)
	note := &event.E{
		Id:            frand.Bytes(32),
		PubkeyBytes:   author,
		CreatedAtUnix: 1,
		KindNum:       kind.TextNote,
		Content:       []byte("hello nostr"),
	}
	profile := &event.E{
		Id:            frand.Bytes(32),
		PubkeyBytes:   author,
		CreatedAtUnix: 2,
		KindNum:       kind.ProfileMetadata,
		Content:       []byte(`{"name":"demo"}`),
	}
	article := &event.E{
		Id:            frand.Bytes(32),
		PubkeyBytes:   author,
		CreatedAtUnix: 3,
		KindNum:       kind.ParameterizedReplaceableStart,
		Content:       []byte("draft"),
		TagList:       tag.S{tag.NewFromStrings("d", "first-post")},
	}

	for _, ev := range []*event.E{note, profile, article} {
		store, discard, err := ae.IndexEvent(ctx, ev, 100)
		if chk.E(err) {
			continue
		}
		log.I.F("indexed kind=%d store=%v discarded=%d", ev.KindNum, store, len(discard))
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.I.F("live entries: %d (workers=%d)", idx.Len(), workers)

	ids, err := idx.Query(ctx, []*index.Filter{{}})
	if chk.E(err) {
		os.Exit(1)
	}
	log.I.F("query([]) returned %d ids", len(ids))
}
