// Package mosaic turns frames into an icon mosaic.
//
// A [Pipeline] owns all mutable render state:
//
//   - the [Grid] cache of last-rendered levels and icon identifiers
//   - the current cell size, viewport and capture availability
//   - the sampling surface ([Sampler]) and render surface ([Canvas])
//
// [Pipeline.Frame] is the per-frame quantize-and-blit step. It skips cells
// whose level moved less than the dead band, and skips blits whose icon is
// already on screen. [Pipeline.Resize] and [Pipeline.ChangeZoom] re-derive the
// grid dimensions and reallocate the grid and both surfaces together.
//
// # Thread Safety
//
// A Pipeline is NOT safe for concurrent use. Frame, Resize and ChangeZoom
// must all run on the goroutine that drives the frame loop.
package mosaic
