// Package key defines keyboard keys and modifier masks shared by the input
// events and the wheel handler.
//
//   - Key: identifies a keyboard key (navigation keys, editing keys or a rune)
//   - Modifier: a bitmask of Shift, Ctrl, Alt and Meta
//
// Modifier masks can be written in configuration as "ctrl+shift", "Alt" or
// the compact "C-S" form; see ParseModifiers.
package key
