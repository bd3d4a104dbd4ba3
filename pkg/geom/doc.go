// Package geom provides the geometry used by the word-cloud layout: a
// center-based axis-aligned rectangle, a padded overlap test, and a
// deterministic Archimedean spiral that generates candidate positions.
//
// Everything here is pure math with no state. Coordinates are in user units
// (pixels in SVG output) with the y axis pointing down, as in SVG.
package geom
