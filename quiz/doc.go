// Package quiz implements the per-user conversation state machine that turns
// a stream of unordered inbound events into a coherent multi-turn flag quiz:
// difficulty selection, non-repeating question sequencing, distractor
// generation, scoring, and game-over/replay handling.
package quiz
