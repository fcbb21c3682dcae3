// Package feed streams live round events to spectators over websockets and
// serves the leaderboard and metrics over HTTP.
package feed

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
)

// Frame is one engine event on the wire. Frames are msgpack-encoded and sent
// as binary websocket messages.
type Frame struct {
	Kind   string `msgpack:"k" json:"kind"`
	Player string `msgpack:"p,omitempty" json:"player,omitempty"`
	Mode   string `msgpack:"m,omitempty" json:"mode,omitempty"`
	Tick   uint64 `msgpack:"t" json:"tick"`
	Score  int    `msgpack:"s" json:"score"`
	Points int    `msgpack:"pt,omitempty" json:"points,omitempty"`
	Count  int    `msgpack:"n,omitempty" json:"count,omitempty"`
	Color  string `msgpack:"c,omitempty" json:"color,omitempty"`
	Row    int    `msgpack:"r,omitempty" json:"row,omitempty"`
	Col    int    `msgpack:"q,omitempty" json:"col,omitempty"`
	Match  uint64 `msgpack:"id,omitempty" json:"match,omitempty"`
}

// FromEvent converts an engine event. Color and cell are carried only for
// the kinds that set them.
func FromEvent(player, mode string, ev engine.Event) Frame {
	f := Frame{
		Kind:   ev.Kind.String(),
		Player: player,
		Mode:   mode,
		Tick:   ev.Tick,
		Score:  ev.Score,
		Points: ev.Points,
		Count:  ev.Count,
		Match:  uint64(ev.Match),
	}

	switch ev.Kind {
	case engine.EventShotFired, engine.EventMiss, engine.EventMatchPending,
		engine.EventMatchRejected, engine.EventClusterPopped, engine.EventOrphanAvalanche:
		f.Color = ev.Color.String()
	case engine.EventSphereSettled:
		f.Color = ev.Color.String()
		f.Row, f.Col = ev.Cell.Row, ev.Cell.Col
	}
	return f
}

// Encode serializes a frame.
func Encode(f Frame) ([]byte, error) {
	b, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("feed: encode %s: %w", f.Kind, err)
	}
	return b, nil
}

// Decode parses a frame produced by Encode.
func Decode(b []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(b, &f); err != nil {
		return Frame{}, fmt.Errorf("feed: decode: %w", err)
	}
	return f, nil
}
