// Package timeline computes the geometry of a schedule: the calendar day range
// shared by every positional computation, the Gantt bar placement, the routed
// dependency connectors and the critical path.
//
// Everything here is pure: the same tasks produce the same geometry, painters
// only translate it to pixels or characters.
package timeline
