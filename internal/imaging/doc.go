// Package imaging computes the per-frame pixel statistics the analyzers score
// on: luma conversion, frame differencing, brightness, HSV saturation, and hue
// histograms. It also downscales frames for analysis and encodes them for export.
package imaging
