package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaRaycast(t *testing.T) {
	a := NewArena(200, 100).AddObstacle(Rect{
		Pos2D:  Pos2D{X: 150, Y: 40},
		Size2D: Size2D{CX: 10, CY: 20},
	})

	testCases := []struct {
		name   string
		pose   Pose2D
		expect float64
	}{
		{"east hits obstacle", Pose2D{Pos2D: Pos2D{X: 50, Y: 50}}, 100},
		{"east passes obstacle", Pose2D{Pos2D: Pos2D{X: 50, Y: 10}}, 150},
		{"north wall", Pose2D{Pos2D: Pos2D{X: 50, Y: 50}, Orientation: AngleDeg(90)}, 50},
		{"west wall", Pose2D{Pos2D: Pos2D{X: 50, Y: 50}, Orientation: AngleDeg(180)}, 50},
		{"diagonal corner", Pose2D{Pos2D: Pos2D{X: 10, Y: 10}, Orientation: AngleDeg(-135)}, 10 * math.Sqrt2},
		{"inside obstacle", Pose2D{Pos2D: Pos2D{X: 155, Y: 50}}, 0},
		{"outside walls", Pose2D{Pos2D: Pos2D{X: -10, Y: 10}, Orientation: AngleDeg(180)}, math.Inf(1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := a.Raycast(tc.pose)
			if math.IsInf(tc.expect, 1) {
				require.True(t, math.IsInf(d, 1))
				return
			}
			require.InDelta(t, tc.expect, d, 1e-9)
		})
	}
}

func TestArenaFree(t *testing.T) {
	a := NewArena(100, 100).AddObstacle(Rect{
		Pos2D:  Pos2D{X: 40, Y: 40},
		Size2D: Size2D{CX: 20, CY: 20},
	})
	require.True(t, a.Free(Pos2D{X: 20, Y: 20}, 10))
	require.False(t, a.Free(Pos2D{X: 5, Y: 50}, 10))
	require.False(t, a.Free(Pos2D{X: 35, Y: 50}, 10))
	require.True(t, a.Free(Pos2D{X: 29, Y: 50}, 10))
	require.False(t, a.Free(Pos2D{X: 50, Y: 50}, 1))
}

func TestAngle(t *testing.T) {
	require.InDelta(t, -90, AngleDeg(270).Deg(), 1e-9)
	require.InDelta(t, math.Pi-0.5, AngleRad(math.Pi).Turn(-0.5).Rad(), 1e-9)
	require.InDelta(t, -170, AngleDeg(170).Turn(20*math.Pi/180).Deg(), 1e-9)
	require.InDelta(t, 20*math.Pi/180, AngleDeg(170).To(AngleDeg(-170)), 1e-9)
	require.InDelta(t, -math.Pi/2, AngleDeg(45).To(AngleDeg(-45)), 1e-9)
	p := AngleDeg(90).Offset(2)
	require.InDelta(t, 0, p.X, 1e-9)
	require.InDelta(t, 2, p.Y, 1e-9)
}
