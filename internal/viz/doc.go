// Package viz is the terminal presenter for the icon mosaic.
//
// The mosaic's render surface is shown with half-block characters, two
// vertical pixels per terminal cell, so the viewport handed to the pipeline
// is the terminal width by twice the rows left over by the status panel.
//
// # Key Bindings
//
//	Space   - Pause/Resume rendering
//	+ / =   - Bigger icons (next cell size)
//	- / _   - Smaller icons
//	T       - Cycle color themes
//	G       - Toggle the redraw plot
//	?       - Toggle full help
//	Q       - Quit
package viz
