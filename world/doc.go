// Package world analyses and edits decoded world databases.
//
// The two destructive passes work on sectors, the 64 by 64 unit chunks every
// object is filed under. CleanStructures removes player built objects from
// sectors where too little was built to be worth keeping, and ResetWorld
// throws away everything outside player bases so the game generates it anew.
// Both are driven by Rules, which name the prefabs and properties that mark
// an object as player built, a ship or a boss stone.
package world
