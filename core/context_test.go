package core

import "testing"

func TestGetUserProfile(t *testing.T) {
	t.Run("returns set profile", func(t *testing.T) {
		p := NewUserProfile("u1")
		rctx := &RecommendContext{UserID: "u1", User: p}
		if got := rctx.GetUserProfile(); got != p {
			t.Error("GetUserProfile() did not return the set profile")
		}
	})

	t.Run("builds empty profile from user id", func(t *testing.T) {
		rctx := &RecommendContext{UserID: "u2"}
		got := rctx.GetUserProfile()
		if got == nil || got.UserID != "u2" {
			t.Errorf("GetUserProfile() = %+v, want empty profile with u2", got)
		}
	})

	t.Run("nil receiver is safe", func(t *testing.T) {
		var rctx *RecommendContext
		got := rctx.GetUserProfile()
		if got == nil {
			t.Fatal("GetUserProfile() on nil receiver = nil, want empty profile")
		}
		if got.UserID != "" {
			t.Errorf("UserID = %q, want empty", got.UserID)
		}
	})
}
