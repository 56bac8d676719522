// Package imaging moves pixels between image files and morphology grids.
//
// It decodes and caches source images, crops them to a region of interest,
// converts them to grid.Grid values (one band for gray, three for RGB) and
// renders grids and watershed label grids back to base64 PNG for transport.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. Regions
// are half-open: (X1,Y1) is inclusive and (X2,Y2) is exclusive.
//
// # Presence
//
// Fully transparent source pixels become absent grid positions. Morphology
// operators skip them as neighbours and write 0 at their location.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Every other function is stateless
// and only reads its inputs.
package imaging
