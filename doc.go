// Package accordion renders an expandable panel list for Bubble Tea
// programs.
//
// A Model holds an ordered sequence of panels, each with a header, a body,
// and an expanded flag. Expanded panels detach from their neighbors with a
// one-row gap and grow a vertical margin around the header; collapsed
// panels sit flush on a shared bordered surface with divider rows between
// them. Expansion state lives with the caller: the list only reports toggle
// requests through its callback, and the caller feeds the new sequence back
// in with SetPanels.
//
// Bodies animate open and closed through crossfade sessions, one per panel,
// driven by anim frame messages. Route every message through Update and the
// sessions keep themselves in sync.
package accordion
