// Package diag narrates diagnostics an explode.Solve run discovered into
// human-readable errors with a witness path: a shortest sequence of
// exploded edges from an entrypoint to the error node (spec.md §4.5).
//
// Reporter buffers Errors (or emits immediately when configured not to
// cache), and EmitAll sorts the buffered errors by (file, line, column),
// groups them by (function, file), and for each walks the shortest witness
// path via an internal BFS walker explicitly grounded on and adapted from
// the teacher's bfs.walker (queueItem/visited/enqueue/loop shape).
package diag
