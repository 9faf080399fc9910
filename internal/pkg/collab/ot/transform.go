// Package ot adjusts concurrently submitted edit operations so they apply
// correctly when replayed in causal order against a single linear text
// buffer. It deliberately stops short of intention-preserving OT: no
// divergent branches, no structural edits, one conflict window per call.
package ot

import (
	"sort"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// Transform orders ops by timestamp (ties broken by version) and shifts each
// operation's position by the accumulated length change of the earlier
// operations that landed at or before it. The first operation is already
// relative to the agreed base and passes through unchanged. Positions never
// go below zero. Well-formed input never fails.
func Transform(ops []collab.EditOperation) []collab.EditOperation {
	if len(ops) == 0 {
		return nil
	}
	out := make([]collab.EditOperation, len(ops))
	copy(out, ops)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Version < out[j].Version
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	for i := 1; i < len(out); i++ {
		pos := out[i].Op.Position()
		offset := 0
		for j := 0; j < i; j++ {
			if out[j].Op.Position() <= pos {
				offset += out[j].Op.Delta()
			}
		}
		adjusted := pos + offset
		if adjusted < 0 {
			adjusted = 0
		}
		out[i].Op = out[i].Op.WithPosition(adjusted)
	}
	return out
}
