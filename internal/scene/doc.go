// Package scene models the GUI scene objects the wheel handler collaborates
// with: scrollable surfaces, their content items, scrollbars, scrollbar
// attachments and scroll views.
//
// The scene is external to the scrolling core. The core only reads and
// writes named properties, walks parent and child links, subscribes to
// change notifications and installs event filters. Object captures exactly
// that contract; Item is the in-memory implementation used by hosts and
// tests.
//
// # Signals and connections
//
// Every notification source is a Signal. Connect returns a Connection which
// the subscriber keeps and disconnects explicitly; nothing is torn down
// automatically when objects change hands.
//
// # Event filters
//
// InstallEventFilter registers a Filter on an object and returns a handle.
// Deliver runs the filters of an object, most recently installed first,
// before the object's own event handler. A filter returning true consumes
// the event.
package scene
