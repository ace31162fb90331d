package actions

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

func TestDecode(t *testing.T) {
	reg := NewRegistry()
	ctx := handlers.Context{Actor: 7}

	tests := []struct {
		name    string
		action  string
		payload string
		want    domain.UserCommand
		wantErr bool
	}{
		{"wait", "WAIT", ``, domain.UserCommand{Kind: domain.CommandWait}, false},
		{"lowercase action", "wait", `{}`, domain.UserCommand{Kind: domain.CommandWait}, false},
		{"move", "MOVE", `{"dx":1,"dy":-1}`, domain.UserCommand{Kind: domain.CommandMove, Dx: 1, Dy: -1}, false},
		{"move zero", "MOVE", `{"dx":0,"dy":0}`, domain.UserCommand{}, true},
		{"move too far", "MOVE", `{"dx":2,"dy":0}`, domain.UserCommand{}, true},
		{"move no payload", "MOVE", ``, domain.UserCommand{}, true},
		{"attack", "ATTACK", `{"targetId":"12"}`, domain.UserCommand{Kind: domain.CommandAttack, TargetID: 12}, false},
		{"attack hash id", "ATTACK", `{"targetId":"#12"}`, domain.UserCommand{Kind: domain.CommandAttack, TargetID: 12}, false},
		{"attack self", "ATTACK", `{"targetId":"7"}`, domain.UserCommand{}, true},
		{"attack garbage", "ATTACK", `{"targetId":"orc"}`, domain.UserCommand{}, true},
		{"click", "CLICK", `{"x":3,"y":4}`, domain.UserCommand{Kind: domain.CommandClick, X: 3, Y: 4}, false},
		{"click negative", "CLICK", `{"x":-1,"y":4}`, domain.UserCommand{}, true},
		{"skill combo", "SKILL", `{"skills":["fire","ice"],"x":2,"y":2}`,
			domain.UserCommand{Kind: domain.CommandSkill, Skills: []string{"fire", "ice"}, X: 2, Y: 2}, false},
		{"skill repeated", "SKILL", `{"skills":["fire","fire"]}`, domain.UserCommand{}, true},
		{"skill empty", "SKILL", `{"skills":[]}`, domain.UserCommand{}, true},
		{"bad json", "CLICK", `{"x":`, domain.UserCommand{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Decode(ctx, api.ClientCommand{Action: tt.action, Payload: json.RawMessage(tt.payload)})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.String() != tt.want.String() || got.TargetID != tt.want.TargetID ||
				got.X != tt.want.X || got.Y != tt.want.Y || len(got.Skills) != len(tt.want.Skills) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeUnknownAction(t *testing.T) {
	_, err := NewRegistry().Decode(handlers.Context{}, api.ClientCommand{Action: "PICKUP"})
	if !errors.Is(err, handlers.ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}
