// Package plugin holds the registration glue around the scrolling core:
// the table of component types exported under the org.kde.lingmoui import,
// style-aware component resolution, icon theme setup, forwarding of UI
// language changes to retranslation callbacks, and the action helper.
package plugin
