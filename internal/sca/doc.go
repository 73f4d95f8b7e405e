// Package sca indexes the SCA template library: the nine class folders, the
// animation variants inside each of them, and the in-memory origin transforms
// a user attaches to those variants before a build.
//
// The library layout is fixed:
//
//	SCA/
//	  Scout/
//	    Scout.qc          aggregate build script
//	    Bat/              variant (animation) folder
//	      Bat.qc
//	      *.smd, *.vta ...
//	  Soldier/
//	  ...
//
// A Catalog is built once per session from a scan of that layout and is then
// mutated in place; it is never re-scanned behind the caller's back.
package sca
