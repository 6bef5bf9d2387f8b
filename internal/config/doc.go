// Package config loads the rules file that tunes the world analyzer.
//
// A rules file is YAML with the keys of world.Rules:
//
//	creatorProperty: creator
//	terrainPrefabs: [digg]
//	densityExcluded: [raise, cultivate, digg, paved_road, mud_road, path, replant]
//	shipPrefabs: [Raft, VikingShip, Karve]
//	shipProperty: rudder
//	bossStones: [BossStone_Eikthyr, BossStone_TheElder]
//	threshold: 25
//
// Any key may be left out to keep its default.
package config
