// Package script lets Lua code take part in wheel handling.
//
// A script defines a global on_wheel(ev) function. It runs for every wheel
// event the handler sees, before the default scrolling, and may call
// ev:accept() to claim the event:
//
//	function on_wheel(ev)
//	  local dx, dy = ev:angle_delta()
//	  if ev:has_modifier("meta") then
//	    scroller.scroll_down(dy < 0 and 5 or -5)
//	    ev:accept()
//	  end
//	end
//
// The scroller module exposes the handler's directional scrolling:
// scroll_up, scroll_down, scroll_left and scroll_right take an optional
// step in pixels, and vertical_step and horizontal_step return the
// configured steps.
//
// States are sandboxed: only the base, table, string and math libraries
// are opened, and the loaders that read files are removed.
package script
