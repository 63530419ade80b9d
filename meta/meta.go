// meta/meta.go
package meta

// ALPHA is the default learning rate.
const ALPHA = 0.1

// GAMMA is the default discount factor.
const GAMMA = 0.9

// EPSILON is the default exploration rate at the start of training.
const EPSILON = 0.1

// EPSILON_DECAY multiplies epsilon after every finished game.
const EPSILON_DECAY = 0.995

const MIN_EPSILON = 0.01

// EPISODES defines the number of training games.
const EPISODES = 50

// MAX_TURNS caps the steady-state turns of one game before it is drawn.
const MAX_TURNS = 100

// KING_HIT_REWARD is paid for a shot at the enemy King.
const KING_HIT_REWARD = 1000

// WIN_REWARD is paid for any other decision that wins the game.
const WIN_REWARD = 500

const QTABLE_PATH = "qtable/q_table.gob"

// DATA_DIR holds the per-decision analysis log.
const DATA_DIR = "experiments/training"

const DB_PATH = "experiments/episodes.db"

const ADDR = ":8080"
