package traversal

import "testing"

func TestRollRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	body := newFakeBody(0, 0, true)
	c, rec := newTestController(t, cfg, body, nil)
	standing := body.env

	c.Step(Input{RollPressed: true}, 0.1)
	if c.Kind() != KindRolling || !c.Rolling() {
		t.Fatalf("state = %s, want rolling", c.Kind())
	}
	checkExclusive(t, c)
	if body.env.Height != cfg.RollHeight {
		t.Fatalf("roll height = %v, want %v", body.env.Height, cfg.RollHeight)
	}
	if bottom := body.env.Center.Y - body.env.Height/2; !near(bottom, standing.Center.Y-standing.Height/2) {
		t.Fatalf("envelope bottom moved to %v", bottom)
	}
	if rec.triggers[TriggerRoll] != 1 || !rec.bools[ParamRolling] {
		t.Fatalf("roll signals = %d/%v", rec.triggers[TriggerRoll], rec.bools[ParamRolling])
	}

	c.Step(Input{MoveX: -1}, 0.1)
	if c.Movement().X != cfg.RollSpeed || !c.FacingRight() {
		t.Fatalf("roll speed = %v facing right = %v", c.Movement().X, c.FacingRight())
	}
	c.Step(Input{MoveX: -1, RollPressed: true}, 0.1)
	if rec.triggers[TriggerRoll] != 1 {
		t.Fatal("roll re-triggered mid roll")
	}

	c.NotifyRollComplete()
	if body.env != standing {
		t.Fatalf("envelope = %+v, want %+v", body.env, standing)
	}
	if c.Rolling() || rec.bools[ParamRolling] {
		t.Fatal("roll not released")
	}
	mustPanic(t, c.NotifyRollComplete)

	c.Step(Input{}, 0.1)
	if c.Kind() != KindGrounded {
		t.Fatalf("state = %s, want grounded", c.Kind())
	}
}

func TestRollLocksFacingLeft(t *testing.T) {
	cfg := DefaultConfig()
	body := newFakeBody(0, 0, true)
	c, _ := newTestController(t, cfg, body, nil)

	c.Step(Input{MoveX: -1}, 0.1)
	c.Step(Input{RollPressed: true}, 0.1)
	c.Step(Input{MoveX: 1}, 0.1)
	if c.Movement().X != -cfg.RollSpeed {
		t.Fatalf("roll speed = %v, want %v", c.Movement().X, -cfg.RollSpeed)
	}
}

func TestRollAirborneAppliesGravity(t *testing.T) {
	cfg := DefaultConfig()
	body := newFakeBody(0, 0, true)
	c, _ := newTestController(t, cfg, body, nil)

	c.Step(Input{RollPressed: true}, 0.1)
	body.grounded = false
	c.Step(Input{}, 0.1)
	c.Step(Input{}, 0.1)
	if c.Kind() != KindRolling {
		t.Fatalf("state = %s, want rolling", c.Kind())
	}
	if c.Movement().Y >= 0 {
		t.Fatalf("vertical = %v, want falling", c.Movement().Y)
	}
}

func TestJumpWinsOverRoll(t *testing.T) {
	body := newFakeBody(0, 0, true)
	c, rec := newTestController(t, DefaultConfig(), body, nil)

	c.Step(Input{JumpPressed: true, RollPressed: true}, 0.1)
	if c.Kind() == KindRolling || rec.triggers[TriggerRoll] != 0 || !c.Jumped() {
		t.Fatalf("state = %s roll triggers = %d", c.Kind(), rec.triggers[TriggerRoll])
	}
}

func TestRollCompleteOutsideRollPanics(t *testing.T) {
	c, _ := newTestController(t, DefaultConfig(), newFakeBody(0, 0, true), nil)
	mustPanic(t, c.NotifyRollComplete)
}
