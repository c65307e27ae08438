package team

import "testing"

func TestGroupSquad_OrdersLinesAndKeepsPlayerOrder(t *testing.T) {
	t.Parallel()

	players := []Player{
		{ID: 1, Name: "Saka", Position: "Right Winger"},
		{ID: 2, Name: "Raya", Position: "Goalkeeper"},
		{ID: 3, Name: "Saliba", Position: "Centre-Back"},
		{ID: 4, Name: "Rice", Position: "Defensive Midfield"},
		{ID: 5, Name: "Arteta", Position: "Coach"},
		{ID: 6, Name: "White", Position: "Right-Back"},
		{ID: 7, Name: "Havertz", Position: "Offence"},
	}

	got := GroupSquad(players)
	wantLines := []string{PositionGoalkeeper, PositionDefence, PositionMidfield, PositionOffence, "Coach"}
	if len(got) != len(wantLines) {
		t.Fatalf("unexpected group count: got=%d want=%d (%+v)", len(got), len(wantLines), got)
	}
	for i, line := range wantLines {
		if got[i].Position != line {
			t.Fatalf("group %d: got=%s want=%s", i, got[i].Position, line)
		}
	}

	defence := got[1].Players
	if len(defence) != 2 || defence[0].ID != 3 || defence[1].ID != 6 {
		t.Fatalf("unexpected defence order: %+v", defence)
	}
	if midfield := got[2].Players; len(midfield) != 1 || midfield[0].ID != 4 {
		t.Fatalf("expected defensive midfielder in midfield, got %+v", midfield)
	}
	offence := got[3].Players
	if len(offence) != 2 || offence[0].ID != 1 || offence[1].ID != 7 {
		t.Fatalf("unexpected offence order: %+v", offence)
	}
}

func TestGroupSquad_Empty(t *testing.T) {
	t.Parallel()

	if got := GroupSquad(nil); len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}

func TestRefAbbreviation_FallsBack(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ref  Ref
		want string
	}{
		{Ref{TLA: "ARS", ShortName: "Arsenal", Name: "Arsenal FC"}, "ARS"},
		{Ref{ShortName: "Spurs", Name: "Tottenham Hotspur FC"}, "Spurs"},
		{Ref{Name: "Brighton & Hove Albion FC"}, "Brighton & Hove Albion FC"},
		{Ref{}, ""},
	}
	for _, tc := range cases {
		if got := tc.ref.Abbreviation(); got != tc.want {
			t.Fatalf("abbreviation of %+v: got=%q want=%q", tc.ref, got, tc.want)
		}
	}
}
