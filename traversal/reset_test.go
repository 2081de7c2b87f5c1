package traversal

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestResetReleasesMechanics(t *testing.T) {
	spawn := cp.Vector{X: -3, Y: 10}

	tests := []struct {
		name  string
		setup func(t *testing.T) (*Controller, *fakeBody, *recorder)
		want  StateKind
	}{
		{
			name: "rolling",
			setup: func(t *testing.T) (*Controller, *fakeBody, *recorder) {
				body := newFakeBody(0, 0, true)
				c, rec := newTestController(t, DefaultConfig(), body, nil)
				c.Step(Input{RollPressed: true}, 0.1)
				return c, body, rec
			},
			want: KindGrounded,
		},
		{
			name: "on_ledge",
			setup: func(t *testing.T) (*Controller, *fakeBody, *recorder) {
				cfg := DefaultConfig()
				body := newFakeBody(1.6, 1.5, false)
				c, rec := newTestController(t, cfg, body, ledgeWorld(cfg.LedgeMask, nil))
				c.Step(Input{}, 1.0/60)
				c.Step(Input{}, 1.0/60)
				if c.Kind() != KindOnLedge {
					t.Fatalf("setup: state = %s", c.Kind())
				}
				return c, body, rec
			},
			want: KindInAir,
		},
		{
			name: "on_ladder",
			setup: func(t *testing.T) (*Controller, *fakeBody, *recorder) {
				return climbing(t, newLadder())
			},
			want: KindInAir,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, body, rec := tc.setup(t)
			standing := newFakeBody(0, 0, false).env

			c.Reset(spawn)
			if !nearVec(body.pos, spawn) {
				t.Fatalf("position = %v, want %v", body.pos, spawn)
			}
			if !body.Enabled() || body.env != standing {
				t.Fatalf("body not restored: enabled=%v env=%+v", body.Enabled(), body.env)
			}
			if c.OnLedge() || c.OnLadder() || c.Rolling() {
				t.Fatal("mechanic still active after reset")
			}
			if rec.bools[ParamOnLedge] || rec.bools[ParamOnLadder] || rec.bools[ParamRolling] {
				t.Fatalf("animator flags not cleared: %v", rec.bools)
			}

			c.Step(Input{}, 0.1)
			if c.Kind() != tc.want {
				t.Fatalf("state = %s, want %s", c.Kind(), tc.want)
			}
			if c.ActiveLadder() != nil {
				t.Fatal("active ladder survived the reset")
			}
			checkExclusive(t, c)
		})
	}
}
