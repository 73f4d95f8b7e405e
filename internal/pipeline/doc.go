// Package pipeline runs a build end to end: stage the selected classes,
// write origin directives into their scripts, divert the live models folder,
// compile one script at a time, pack the output and put everything back.
//
// The compile queue is drained one item per Step so a caller can report
// progress, or stop pulling items and Abort, between compiler runs. A
// compiler run itself cannot be interrupted.
package pipeline
