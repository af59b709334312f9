package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_SelfAndWallSensorsAlwaysAvailable(t *testing.T) {
	table := Build(Self{X: 1, Y: 2, HeadingDegrees: 90, Energy: 80, ArenaSize: 10},
		EnemyCurrent{}, EnemyPrev{}, Walls{Ahead: 5, Left: 3, Right: 6, Back: 2, Nearest: 2})

	assert.Equal(t, Avail(1), table["SELF_X"])
	assert.Equal(t, Avail(2), table["SELF_Y"])
	assert.Equal(t, Avail(90.0), table["SELF_HEADING"])
	assert.Equal(t, Avail(80.0), table["SELF_ENERGY"])
	assert.Equal(t, Avail(2.0), table["WALL_NEAREST_DISTANCE"])
}

func TestBuild_EnemyUnavailableWhenNotVisible(t *testing.T) {
	table := Build(Self{}, EnemyCurrent{Visible: false}, EnemyPrev{}, Walls{})

	for _, name := range []string{"ENEMY_X", "ENEMY_Y", "ENEMY_HEADING", "ENEMY_DX", "ENEMY_DY", "ENEMY_DISTANCE"} {
		assert.Equal(t, Unavailable, table[name], name)
	}
}

func TestBuild_EnemyAvailableWhenVisible(t *testing.T) {
	table := Build(Self{}, EnemyCurrent{Visible: true, X: 4, Y: 5, DX: 2, DY: 3, Distance: 3.6, HeadingDegrees: 45},
		EnemyPrev{}, Walls{})

	assert.Equal(t, Avail(4.0), table["ENEMY_X"])
	assert.Equal(t, Avail(3.6), table["ENEMY_DISTANCE"])
}

func TestBuild_DeltaUnavailableWithoutPriorSighting(t *testing.T) {
	table := Build(Self{}, EnemyCurrent{Visible: true, X: 4, Y: 5, Distance: 3}, EnemyPrev{Valid: false}, Walls{})
	assert.Equal(t, Unavailable, table["ENEMY_X_DELTA"])
}

func TestBuild_DeltaComputedWhenBothAvailable(t *testing.T) {
	table := Build(Self{},
		EnemyCurrent{Visible: true, X: 5, Y: 5, Distance: 4},
		EnemyPrev{Valid: true, X: 3, Y: 5, Distance: 6},
		Walls{})

	assert.Equal(t, Avail(2.0), table["ENEMY_X_DELTA"])
	assert.Equal(t, Avail(0.0), table["ENEMY_Y_DELTA"])
	assert.Equal(t, Avail(-2.0), table["ENEMY_DISTANCE_DELTA"])
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("ENEMY_DISTANCE"))
	assert.False(t, IsKnown("NOT_A_SENSOR"))
}
