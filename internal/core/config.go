package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the current round has ended
	Paused   bool // Whether the game is paused
	Round    int  // Round number, increments on every restart
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RoundSummary describes a finished round for persistence.
type RoundSummary struct {
	ID       string        // Unique round identifier
	Game     string        // Game ID
	Number   int           // Round number within the session, starting at 1
	Score    int           // Final score
	Reason   string        // Why the round ended ("time_up", "hazard")
	Hazards  int           // Hazards spawned during the round
	Batches  int           // Collectible batches cleared
	Duration time.Duration // Simulated play time
}
