// Package roddom adapts a live go-rod-controlled Chrome target to the dom.*
// host-collaborator interfaces. Unlike htmldom (a static parse tree with no
// layout engine), roddom can answer Rect and ComputedStyle for real, which
// makes the §4.3 SVG-animation-avoidance check meaningful against a live
// page rather than always degrading to "unknown".
package roddom
