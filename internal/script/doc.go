// Package script runs Lua frame scripts against a renderer.
//
// A script defines a global function frame(n) which is called once per
// frame with the frame number, starting at 1. The function draws through
// the wobl table and returns false to stop. Returning nothing keeps the
// loop running.
//
//	function frame(n)
//	  wobl.clear()
//	  wobl.draw_text(0, 0, "frame " .. n, "yellow", "reset", "bold")
//	  if wobl.just_pressed("q") then
//	    return false
//	  end
//	end
//
// Coordinates are zero-based cell positions. Colors use the names accepted
// by core.ParseColor and attributes are comma separated names such as
// "bold,underline". Only the base, table, string and math libraries are
// available.
package script
